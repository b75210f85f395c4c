// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"time"
)

// Update advances the match by ticks and sends the result to each Client. Goals
// scored during those ticks are sent first.
func (h *Hub) Update(ticks int) {
	defer h.timeFunction("update", time.Now())

	for i := 0; i < ticks; i++ {
		h.match.Update(updatePeriod)
	}

	for _, goal := range h.goals {
		out := Goal{GoalEvent: goal}
		h.broadcast(out)

		if h.relay != nil {
			buf, err := json.Marshal(out)
			if err == nil {
				err = h.relay.PublishGoal(buf)
			}
			if err != nil {
				h.logger.Warn("relay goal", "err", err)
			}
		}
	}
	h.goals = h.goals[:0]

	// Every client shares the same Update, so nothing may modify it after this point.
	h.broadcast(&Update{
		Snapshot:   h.match.Snapshot(),
		Spectators: h.clients.Len,
	})
}
