// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
)

// Snapshot is a copy of everything a spectator sees. It shares nothing with the Match.
type Snapshot struct {
	Tick          world.Ticks     `json:"tick"`
	Ball          BallSnapshot    `json:"ball"`
	Teams         [2]TeamSnapshot `json:"teams"`
	GameOn        bool            `json:"gameOn"`
	KeeperHasBall bool            `json:"keeperHasBall"`
}

type BallSnapshot struct {
	Position world.Vec2f `json:"position"`
	Velocity world.Vec2f `json:"velocity"`
}

type TeamSnapshot struct {
	Name  string `json:"name"`
	Left  bool   `json:"left"`
	State string `json:"state"`
	Score int    `json:"score"`
	// Indices into Players, -1 for none.
	Controlling int              `json:"controlling"`
	Receiving   int              `json:"receiving"`
	Supporting  int              `json:"supporting"`
	SupportSpot *world.Vec2f     `json:"supportSpot,omitempty"`
	Players     []PlayerSnapshot `json:"players"`
}

type PlayerSnapshot struct {
	Name     string      `json:"name"`
	Role     Role        `json:"role"`
	State    string      `json:"state"`
	Position world.Vec2f `json:"position"`
	Heading  world.Angle `json:"heading"`
	Target   world.Vec2f `json:"target"`
	Goals    int         `json:"goals,omitempty"`
}

func indexOf(p *Player) int {
	if p == nil {
		return -1
	}
	return p.Index
}

func (m *Match) Snapshot() Snapshot {
	snapshot := Snapshot{
		Tick: m.ticks,
		Ball: BallSnapshot{
			Position: m.Ball.Position,
			Velocity: m.Ball.Velocity,
		},
		GameOn:        m.GameOn,
		KeeperHasBall: m.KeeperHasBall,
	}

	for i, team := range m.Teams {
		ts := TeamSnapshot{
			Name:        team.Name,
			Left:        team.Left,
			State:       team.state.String(),
			Score:       team.Score(),
			Controlling: indexOf(team.controlling),
			Receiving:   indexOf(team.receiving),
			Supporting:  indexOf(team.supporting),
			Players:     make([]PlayerSnapshot, len(team.Players)),
		}
		if team.state == Attacking && team.supportSpots.computed {
			spot := team.supportSpots.spots[team.supportSpots.best].Position
			ts.SupportSpot = &spot
		}
		for j, p := range team.Players {
			ts.Players[j] = PlayerSnapshot{
				Name:     p.Name,
				Role:     p.Role,
				State:    p.StateName(),
				Position: p.Position,
				Heading:  p.Heading.Angle(),
				Target:   p.Target,
				Goals:    p.Goals,
			}
		}
		snapshot.Teams[i] = ts
	}
	return snapshot
}
