// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"github.com/SoftbearStudios/soccer/server/world"
	"time"
)

const relayTimeout = 2 * time.Second

// Cloud persists statistics and standings. Use Offline when there is none.
type Cloud interface {
	fmt.Stringer
	UpdateServer(spectators int) error
	IncrementSpectatorStatistic()
	IncrementGoalStatistic()
	FlushStatistics() error
	// UpdateLeaderboard takes goals by scorer name.
	UpdateLeaderboard(scorers map[string]int) error
	UploadMatchSnapshot(data []byte) error // takes an encoded Snapshot
	UpdatePeriod() time.Duration
}

type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UpdateServer(spectators int) error {
	return nil
}

func (offline Offline) IncrementSpectatorStatistic() {}
func (offline Offline) IncrementGoalStatistic()      {}

func (offline Offline) FlushStatistics() error {
	return nil
}

func (offline Offline) UpdateLeaderboard(scorers map[string]int) error {
	return nil
}

func (offline Offline) UploadMatchSnapshot(data []byte) error {
	return nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

// status is served by ServeIndex and published to the relay.
type status struct {
	Teams      [2]string   `json:"teams"`
	Score      [2]int      `json:"score"`
	Tick       world.Ticks `json:"tick"`
	GameOn     bool        `json:"gameOn"`
	Spectators int         `json:"spectators"`
}

// Status refreshes the status served over HTTP and publishes it to the relay.
func (h *Hub) Status() {
	left, right := h.match.Score()
	statusJSON, err := json.Marshal(status{
		Teams:      [2]string{h.match.Teams[0].Name, h.match.Teams[1].Name},
		Score:      [2]int{left, right},
		Tick:       h.match.Ticks(),
		GameOn:     h.match.GameOn,
		Spectators: h.clients.Len,
	})
	if err != nil {
		h.logger.Error("marshaling status", "err", err)
		return
	}
	h.statusJSON.Store(statusJSON)

	if h.relay != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
			defer cancel()
			if err := h.relay.PublishStatus(ctx, statusJSON); err != nil {
				h.logger.Warn("relay status", "err", err)
			}
		}()
	}
}

func (h *Hub) Cloud() {
	h.logger.Debug("updating cloud", "cloud", h.cloud)

	err := h.cloud.FlushStatistics()
	if err != nil {
		h.logger.Error("flushing statistics", "err", err)
	}

	// Scorers can share a name across teams, keep the best.
	scorers := make(map[string]int)
	for _, scorer := range h.match.Scorers() {
		if scorer.Goals > scorers[scorer.Name] {
			scorers[scorer.Name] = scorer.Goals
		}
	}

	snapshot, err := json.Marshal(h.match.Snapshot())
	if err != nil {
		h.logger.Error("marshaling snapshot", "err", err)
	}

	go func() {
		if err := h.cloud.UpdateLeaderboard(scorers); err != nil {
			h.logger.Error("updating leaderboard", "err", err)
		}
		if snapshot != nil {
			if err := h.cloud.UploadMatchSnapshot(snapshot); err != nil {
				h.logger.Error("uploading snapshot", "err", err)
			}
		}
	}()

	h.Status()

	err = h.cloud.UpdateServer(h.clients.Len)
	if err != nil {
		h.logger.Error("updating server", "err", err)
	}
}
