// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"testing"
)

// constRand always returns the same number.
type constRand float32

func (r constRand) Float32() float32 {
	return float32(r)
}

type transition struct {
	component, from, to string
}

type recorder struct {
	transitions []transition
	goals       []GoalEvent
}

func (r *recorder) Transition(component, from, to string) {
	r.transitions = append(r.transitions, transition{component, from, to})
}

func (r *recorder) Goal(event GoalEvent) {
	r.goals = append(r.goals, event)
}

func newTestMatch(t *testing.T, options ...Option) *Match {
	t.Helper()
	options = append([]Option{WithRand(constRand(0.5)), WithTeamNames("Home", "Away")}, options...)
	m, err := NewMatch(DefaultParams(), options...)
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	return m
}

// settle puts every player into its default running state, as if the kickoff was over,
// and drops pending messages.
func settle(m *Match) {
	m.postbox.Clear()
	m.GameOn = true
	for _, team := range m.Teams {
		team.state = Defending
		team.clearReferences()
		for _, p := range team.Players {
			p.started = true
			p.stop()
			p.trackBall = false
			p.Target = p.Position
			if p.Role == Goalkeeper {
				p.keeperState = KeeperTendGoal
				tendGoalEnter(p)
			} else {
				p.fieldState = FieldWait
			}
		}
	}
}

// moveTeam places the players of team at positions, in order. Extra players are
// left where they are.
func moveTeam(team *Team, positions ...world.Vec2f) {
	for i, position := range positions {
		if i >= len(team.Players) {
			break
		}
		team.Players[i].Position = position
		team.Players[i].Target = position
	}
}

func pending(m *Match, kind MessageKind, sender, receiver *Player) (count int) {
	for _, message := range m.postbox.Pending() {
		if message.Kind == kind && (sender == nil || message.Sender == sender) && (receiver == nil || message.Receiver == receiver) {
			count++
		}
	}
	return
}
