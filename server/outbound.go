// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/soccer/server/soccer"
)

type (
	// Goal is sent once for each goal, before the Update that shows the kickoff.
	Goal struct {
		soccer.GoalEvent
	}

	// Leaderboard is the top 10 scorers of the current match.
	Leaderboard struct {
		Leaderboard []soccer.Scorer `json:"leaderboard"`
	}

	// Update is the state of the match after the latest tick.
	Update struct {
		soccer.Snapshot
		Spectators int `json:"spectators,omitempty"`
	}
)

func init() {
	registerOutbound(
		Goal{},
		Leaderboard{},
		&Update{},
	)
}

func (Goal) outbound()        {}
func (Leaderboard) outbound() {}
func (*Update) outbound()     {}
