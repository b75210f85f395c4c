// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"github.com/chewxy/math32"
	"reflect"
	"testing"
)

func TestNewMatch(t *testing.T) {
	rec := &recorder{}
	m := newTestMatch(t, WithObserver(rec))

	if m.GameOn {
		t.Fatal("game on before kickoff")
	}
	if m.Ball.Position != m.Pitch.Center() || m.Ball.Speed() != 0 {
		t.Fatalf("ball not placed for kickoff: %+v", m.Ball)
	}
	if m.Teams[Left].Name != "Home" || m.Teams[Right].Name != "Away" {
		t.Fatalf("unexpected names %q %q", m.Teams[Left].Name, m.Teams[Right].Name)
	}

	for _, team := range m.Teams {
		if team.State() != PrepareForKickOff {
			t.Fatalf("%s: expected PrepareForKickOff, got %s", team.Side(), team.State())
		}
		if len(team.Players) != len(m.params.Formation) || team.Keeper() == nil {
			t.Fatalf("%s: unexpected players", team.Side())
		}
		for _, p := range team.Players {
			if p.Home != p.Position {
				t.Errorf("%s: not placed at home", p.Label())
			}
		}
	}

	// The right team mirrors the left one.
	l, r := m.Teams[Left].Players[1], m.Teams[Right].Players[1]
	if l.Home.Y != r.Home.Y || l.Home.X-m.Pitch.Bounds.Left() != m.Pitch.Bounds.Right()-r.Home.X {
		t.Errorf("formation not mirrored: %v %v", l.Home, r.Home)
	}

	if n := pending(m, GoHome, nil, nil); n != 2*len(m.params.Formation) {
		t.Errorf("expected everyone sent home, got %d messages", n)
	}
}

func TestNewMatch_RandomTeamNames(t *testing.T) {
	m, err := NewMatch(DefaultParams(), WithRand(NewRand(3)))
	if err != nil {
		t.Fatal(err)
	}
	if m.Teams[Left].Name == "" || m.Teams[Left].Name == m.Teams[Right].Name {
		t.Fatalf("unexpected names %q %q", m.Teams[Left].Name, m.Teams[Right].Name)
	}
}

func TestKickoff(t *testing.T) {
	rec := &recorder{}
	m := newTestMatch(t, WithObserver(rec))
	rec.transitions = nil

	// Everyone starts at home, so play begins on the first tick.
	m.Update(world.TickPeriod)
	if !m.GameOn {
		t.Fatal("expected game on")
	}
	for _, team := range m.Teams {
		if team.State() != Defending {
			t.Fatalf("%s: expected Defending, got %s", team.Side(), team.State())
		}
	}

	found := false
	for _, tr := range rec.transitions {
		if tr == (transition{"left", "PrepareForKickOff", "Defending"}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("team transition not observed: %v", rec.transitions)
	}
}

func TestGoal(t *testing.T) {
	rec := &recorder{}
	m := newTestMatch(t, WithObserver(rec))
	settle(m)

	scorer := m.Teams[Left].Players[3]
	m.lastKicker = scorer
	m.Ball.Place(world.Vec2f{X: m.Goals[Right].Position.X + 20, Y: m.Goals[Right].Position.Y})

	m.Update(world.TickPeriod)

	if len(rec.goals) != 1 {
		t.Fatalf("expected one goal, got %d", len(rec.goals))
	}
	event := rec.goals[0]
	expected := GoalEvent{Left: true, Team: "Home", Scorer: scorer.Name, Score: [2]int{1, 0}}
	if event != expected {
		t.Fatalf("expected %+v, got %+v", expected, event)
	}
	if left, right := m.Score(); left != 1 || right != 0 {
		t.Fatalf("expected 1:0, got %d:%d", left, right)
	}
	if scorer.Goals != 1 {
		t.Fatalf("scorer not credited")
	}
	if scorers := m.Scorers(); len(scorers) != 1 || scorers[0] != (Scorer{Name: scorer.Name, Team: "Home", Goals: 1}) {
		t.Fatalf("unexpected scorers %v", scorers)
	}

	// Kickoff again.
	if m.GameOn || m.Ball.Position != m.Pitch.Center() || m.Teams[Left].State() != PrepareForKickOff {
		t.Fatal("expected kickoff after the goal")
	}

	// Own goal into the same net.
	settle(m)
	own := m.Teams[Right].Players[1]
	m.lastKicker = own
	m.Ball.Place(world.Vec2f{X: m.Goals[Right].Position.X + 20, Y: m.Goals[Right].Position.Y})
	m.Update(world.TickPeriod)

	if len(rec.goals) != 2 || !rec.goals[1].OwnGoal || !rec.goals[1].Left || rec.goals[1].Score != [2]int{2, 0} {
		t.Fatalf("unexpected own goal %+v", rec.goals)
	}
	if own.Goals != 0 {
		t.Fatal("own goal credited")
	}

	m.Reset()
	if left, right := m.Score(); left != 0 || right != 0 || scorer.Goals != 0 {
		t.Fatal("reset kept the score")
	}
}

func TestSnapshot(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	team.SetControllingPlayer(team.Players[1])

	snapshot := m.Snapshot()
	left := snapshot.Teams[Left]
	if left.Name != "Home" || !left.Left || left.Controlling != 1 || left.Receiving != -1 || left.Supporting != -1 {
		t.Fatalf("unexpected team snapshot %+v", left)
	}
	if snapshot.Teams[Right].Controlling != -1 {
		t.Fatal("both teams in control")
	}
	if len(left.Players) != len(team.Players) || left.Players[0].Role != Goalkeeper || left.Players[0].State != "TendGoal" {
		t.Fatalf("unexpected players %+v", left.Players)
	}
	if left.Players[1].State != "Wait" {
		t.Fatalf("expected Wait, got %s", left.Players[1].State)
	}

	// The snapshot does not share memory with the match.
	left.Players[1].Position = world.Vec2f{}
	if team.Players[1].Position == (world.Vec2f{}) {
		t.Fatal("snapshot shares players")
	}
}

// checkInvariants fails if the match is in a state that play must never reach.
func checkInvariants(t *testing.T, m *Match) {
	t.Helper()

	if m.Teams[Left].InControl() && m.Teams[Right].InControl() {
		t.Fatalf("tick %d: both teams in control", m.Ticks())
	}

	net := m.params.GoalDepth + m.params.BallRadius + 1
	bounds := m.Pitch.Bounds
	ball := m.Ball.Position
	if !finite(ball) || ball.X < bounds.Left()-net || ball.X > bounds.Right()+net ||
		ball.Y < bounds.Top()-1 || ball.Y > bounds.Bottom()+1 {
		t.Fatalf("tick %d: ball escaped to %v", m.Ticks(), ball)
	}

	for _, team := range m.Teams {
		for _, ref := range []*Player{team.controlling, team.receiving, team.supporting, team.closest} {
			if ref != nil && ref.team != team {
				t.Fatalf("tick %d: %s references %s", m.Ticks(), team.Side(), ref.Label())
			}
		}
		for _, p := range team.Players {
			if !finite(p.Position) || !finite(p.Target) || !finite(p.Heading) {
				t.Fatalf("tick %d: %s at %v target %v", m.Ticks(), p.Label(), p.Position, p.Target)
			}
			if !bounds.ContainsPoint(p.Position) {
				t.Fatalf("tick %d: %s left the pitch", m.Ticks(), p.Label())
			}
		}
	}
}

func finite(v world.Vec2f) bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func TestMatch_Play(t *testing.T) {
	m := newTestMatch(t, WithRand(NewRand(42)))

	kicked := false
	for i := world.Ticks(0); i < 5*60*world.TicksPerSecond; i++ {
		m.Update(world.TickPeriod)
		checkInvariants(t, m)
		if m.lastKicker != nil {
			kicked = true
		}
	}

	if !kicked {
		t.Fatal("nobody kicked the ball")
	}
	if left, right := m.Score(); left+right == 0 {
		t.Fatal("no goal in five minutes")
	}
	if m.Ticks() != 5*60*world.TicksPerSecond {
		t.Fatalf("unexpected tick count %d", m.Ticks())
	}
}

func TestMatch_Deterministic(t *testing.T) {
	play := func() Snapshot {
		m, err := NewMatch(DefaultParams(), WithRand(NewRand(7)))
		if err != nil {
			t.Fatal(err)
		}
		for i := world.Ticks(0); i < 30*world.TicksPerSecond; i++ {
			m.Update(world.TickPeriod)
		}
		return m.Snapshot()
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Fatal("same seed played differently")
	}
}
