// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"github.com/chewxy/math32"
	"testing"
	"time"
)

// behind places every opponent of team at x, spread around the middle of the pitch.
func behind(team *Team, x float32) {
	moveTeam(team.opponents,
		world.Vec2f{X: x, Y: 250},
		world.Vec2f{X: x, Y: 300},
		world.Vec2f{X: x, Y: 350},
		world.Vec2f{X: x, Y: 400},
		world.Vec2f{X: x, Y: 450},
	)
}

func TestWait_RequestsPass(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	controlling := team.Players[1]
	requester := team.Players[3]
	controlling.Position = world.Vec2f{X: 400, Y: 352}
	requester.Position = world.Vec2f{X: 800, Y: 300}
	requester.Target = requester.Position
	behind(team, 150)
	m.Ball.Place(world.Vec2f{X: 410, Y: 352})
	team.SetControllingPlayer(controlling)

	waitExecute(requester)
	if n := pending(m, PassToMe, requester, controlling); n != 1 {
		t.Fatalf("expected one pass request, got %d", n)
	}
	if requester.FieldState() != FieldWait {
		t.Fatalf("expected Wait, got %s", requester.FieldState())
	}

	// The controlling player passes, and the requester receives on the next delivery.
	m.postbox.Deliver()
	if n := pending(m, ReceiveBall, controlling, requester); n != 1 {
		t.Fatalf("expected a receive message, got %d", n)
	}
	if m.Ball.Velocity.Dot(requester.Position.Sub(m.Ball.Position)) <= 0 {
		t.Fatalf("ball not kicked toward requester: %v", m.Ball.Velocity)
	}
	if controlling.readyToKick {
		t.Fatal("kick did not start the cooldown")
	}

	m.postbox.Deliver()
	if requester.FieldState() != FieldReceiveBall || team.ReceivingPlayer() != requester {
		t.Fatalf("expected requester receiving, got %s", requester.FieldState())
	}
}

func TestWait_BehindAttackerDoesNotRequest(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	controlling := team.Players[3]
	requester := team.Players[1]
	controlling.Position = world.Vec2f{X: 800, Y: 352}
	requester.Position = world.Vec2f{X: 400, Y: 300}
	requester.Target = requester.Position
	behind(team, 150)
	team.SetControllingPlayer(controlling)

	waitExecute(requester)
	if n := pending(m, PassToMe, nil, nil); n != 0 {
		t.Fatalf("expected no pass request, got %d", n)
	}
}

func TestKeeper_CatchesBall(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	keeper := m.Teams[Left].Keeper()
	m.Ball.Place(keeper.Position.Add(world.Vec2f{X: 10}))

	m.Update(world.TickPeriod)

	if keeper.KeeperState() != KeeperPutBallBackInPlay {
		t.Fatalf("expected PutBallBackInPlay, got %s", keeper.KeeperState())
	}
	if !m.KeeperHasBall {
		t.Fatal("expected keeper to have the ball")
	}
	if m.Ball.Speed() != 0 {
		t.Fatalf("expected trapped ball, got %v", m.Ball.Velocity)
	}
	if m.Teams[Left].ControllingPlayer() != keeper {
		t.Fatal("expected keeper in control")
	}
}

func TestKeeper_PutsBallBackInPlay(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	keeper := team.Keeper()
	moveTeam(team,
		keeper.Position,
		world.Vec2f{X: 400, Y: 200},
		world.Vec2f{X: 400, Y: 500},
		world.Vec2f{X: 700, Y: 300},
		world.Vec2f{X: 700, Y: 420},
	)
	// Behind the keeper.
	behind(team, 85)
	m.Ball.Place(keeper.Position.Add(world.Vec2f{X: 10}))

	keeper.catch()
	m.postbox.Clear()

	putBallBackInPlayExecute(keeper)
	if keeper.KeeperState() != KeeperPutBallBackInPlay || m.Ball.Speed() != 0 {
		t.Fatal("released the ball before the hold time")
	}

	m.scheduler.Advance(m.params.KeeperHoldTime)
	putBallBackInPlayExecute(keeper)

	if keeper.KeeperState() != KeeperTendGoal {
		t.Fatalf("expected TendGoal, got %s", keeper.KeeperState())
	}
	if m.KeeperHasBall {
		t.Fatal("keeper still has the ball")
	}
	if n := pending(m, ReceiveBall, keeper, nil); n != 1 {
		t.Fatalf("expected one receive message, got %d", n)
	}
	if speed := m.Ball.Speed(); math32.Abs(speed-m.params.MaxPassPower) > 0.01 {
		t.Fatalf("expected pass at full power, got %f", speed)
	}
	// Not caught again right away.
	if keeper.canCatch() {
		t.Fatal("keeper could catch its own pass")
	}
}

func TestKeeper_InterceptsBall(t *testing.T) {
	tests := []struct {
		name      string
		control   func(m *Match)
		intercept bool
	}{
		{"loose ball", func(*Match) {}, true},
		{"own team in control", func(m *Match) {
			m.Teams[Left].SetControllingPlayer(m.Teams[Left].Players[1])
		}, true},
		{"opponents in control", func(m *Match) {
			m.Teams[Right].SetControllingPlayer(m.Teams[Right].Players[1])
		}, false},
	}

	for _, test := range tests {
		m := newTestMatch(t)
		settle(m)
		keeper := m.Teams[Left].Keeper()
		m.Ball.Place(world.Vec2f{X: 180, Y: 352})
		test.control(m)

		tendGoalExecute(keeper)
		expected := KeeperTendGoal
		if test.intercept {
			expected = KeeperInterceptBall
		}
		if keeper.KeeperState() != expected {
			t.Errorf("%s: expected %s, got %s", test.name, expected, keeper.KeeperState())
		}
	}
}

func TestKeeper_InterceptBall(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	keeper := team.Keeper()
	moveTeam(team,
		world.Vec2f{X: 400, Y: 352},
		world.Vec2f{X: 300, Y: 100},
		world.Vec2f{X: 300, Y: 600},
		world.Vec2f{X: 700, Y: 100},
		world.Vec2f{X: 700, Y: 600},
	)
	behind(team, 1000)
	keeper.setKeeperState(KeeperInterceptBall)

	// Far from the goal mouth but closest to the ball, the keeper keeps going.
	m.Ball.Place(world.Vec2f{X: 420, Y: 352})
	interceptBallExecute(keeper)
	if keeper.KeeperState() != KeeperInterceptBall || !keeper.Pursuit {
		t.Fatalf("expected InterceptBall, got %s", keeper.KeeperState())
	}

	// Somebody else is closer.
	behind(team, 590)
	m.Ball.Place(world.Vec2f{X: 600, Y: 352})
	interceptBallExecute(keeper)
	if keeper.KeeperState() != KeeperReturnToHome {
		t.Fatalf("expected ReturnToHome, got %s", keeper.KeeperState())
	}
	if keeper.Pursuit || !keeper.Seek || keeper.Target != keeper.Home {
		t.Fatal("expected keeper seeking home")
	}
}

func TestKickBall(t *testing.T) {
	tests := []struct {
		name string
		rand constRand
		ball world.Vec2f
		// Opponents are placed behind the kicker first, then these in order.
		opponents []world.Vec2f
		setup     func(m *Match)
		state     FieldState
		kicked    bool
		passed    bool
	}{
		{name: "shot", rand: 0.5, ball: world.Vec2f{X: 310, Y: 352}, state: FieldWait, kicked: true},
		{name: "pot shot", rand: 0, ball: world.Vec2f{X: 310, Y: 352}, opponents: []world.Vec2f{{X: 700, Y: 352}}, state: FieldWait, kicked: true},
		{name: "pass when threatened", rand: 0.5, ball: world.Vec2f{X: 310, Y: 352}, opponents: []world.Vec2f{{X: 340, Y: 352}}, state: FieldWait, kicked: true, passed: true},
		{name: "dribble", rand: 0.5, ball: world.Vec2f{X: 310, Y: 352}, opponents: []world.Vec2f{{X: 700, Y: 352}}, state: FieldDribble},
		{name: "ball behind", rand: 0.5, ball: world.Vec2f{X: 290, Y: 352}, state: FieldChaseBall},
		{name: "pass in flight", rand: 0.5, ball: world.Vec2f{X: 310, Y: 352}, setup: func(m *Match) {
			m.Teams[Left].receiving = m.Teams[Left].Players[3]
		}, state: FieldChaseBall},
		{name: "keeper has ball", rand: 0.5, ball: world.Vec2f{X: 310, Y: 352}, setup: func(m *Match) {
			m.KeeperHasBall = true
		}, state: FieldChaseBall},
	}

	for _, test := range tests {
		m := newTestMatch(t, WithRand(test.rand))
		settle(m)

		team := m.Teams[Left]
		p := team.Players[1]
		moveTeam(team,
			world.Vec2f{X: 104, Y: 352},
			world.Vec2f{X: 300, Y: 352},
			world.Vec2f{X: 200, Y: 560},
			world.Vec2f{X: 560, Y: 200},
			world.Vec2f{X: 560, Y: 504},
		)
		behind(team, 150)
		moveTeam(team.opponents, test.opponents...)
		m.Ball.Place(test.ball)
		p.Heading = world.Vec2f{X: 1}
		p.fieldState = FieldKickBall
		team.SetControllingPlayer(p)
		if test.setup != nil {
			test.setup(m)
		}

		kickBallExecute(p)

		if p.FieldState() != test.state {
			t.Errorf("%s: expected %s, got %s", test.name, test.state, p.FieldState())
		}
		if kicked := m.lastKicker == p; kicked != test.kicked {
			t.Errorf("%s: expected kicked %t, got %t", test.name, test.kicked, kicked)
		}
		if passed := pending(m, ReceiveBall, p, nil) == 1; passed != test.passed {
			t.Errorf("%s: expected passed %t, got %t", test.name, test.passed, passed)
		}

		power := m.params.MaxShotPower
		if test.passed {
			power = m.params.MaxPassPower
		}
		if speed := m.Ball.Speed(); test.kicked && math32.Abs(speed-power) > 0.01 {
			t.Errorf("%s: expected power %f, got %f", test.name, power, speed)
		} else if !test.kicked && speed != 0 {
			t.Errorf("%s: expected ball at rest, got %f", test.name, speed)
		}
		if test.kicked && m.Ball.Velocity.X <= 0 {
			t.Errorf("%s: kicked toward the own goal: %v", test.name, m.Ball.Velocity)
		}
	}
}

func TestChaseBall(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	p := team.Players[1]
	p.setFieldState(FieldChaseBall)
	m.Ball.Place(world.Vec2f{X: 640, Y: 352})

	team.closest = p
	chaseBallExecute(p)
	if p.FieldState() != FieldChaseBall || !p.Pursuit {
		t.Fatalf("expected ChaseBall, got %s", p.FieldState())
	}

	// A teammate is closer, so the player goes home.
	team.closest = team.Players[2]
	chaseBallExecute(p)
	if p.FieldState() != FieldReturnToHome || p.Pursuit || p.Target != p.Home {
		t.Fatalf("expected ReturnToHome, got %s", p.FieldState())
	}

	// In kicking range, the player kicks even when it is not the closest.
	p.setFieldState(FieldChaseBall)
	m.Ball.Place(p.Position.Add(world.Vec2f{X: 10}))
	chaseBallExecute(p)
	if p.FieldState() != FieldKickBall || !p.IsControllingPlayer() {
		t.Fatalf("expected KickBall, got %s", p.FieldState())
	}
}

func TestSupportAttacker(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	controlling := team.Players[3]
	supporter := team.Players[4]
	controlling.Position = world.Vec2f{X: 600, Y: 352}
	m.Ball.Place(controlling.Position)
	behind(team, 150)
	team.SetControllingPlayer(controlling)
	team.supporting = supporter

	supporter.handle(Message{Kind: SupportAttacker})
	spot := team.SupportSpot()
	if supporter.FieldState() != FieldSupportAttacker || supporter.Target != spot || !supporter.Seek {
		t.Fatalf("expected supporter seeking %v, got %s", spot, supporter.FieldState())
	}

	// A stale target is replaced by the current spot.
	supporter.Position = spot.Sub(world.Vec2f{X: 100})
	supporter.Target = supporter.Position
	supportAttackerExecute(supporter)
	if supporter.Target != spot || !supporter.Seek {
		t.Fatalf("expected target %v, got %v", spot, supporter.Target)
	}

	// At the spot and unthreatened, the supporter waits for the ball and asks for it.
	m.postbox.Clear()
	supporter.Position = spot
	supportAttackerExecute(supporter)
	if supporter.Seek || !supporter.trackBall {
		t.Fatal("expected supporter tracking the ball")
	}
	if n := pending(m, PassToMe, supporter, controlling); n == 0 {
		t.Fatal("expected a pass request")
	}

	// Control is lost.
	team.SetControllingPlayer(nil)
	supportAttackerExecute(supporter)
	if supporter.FieldState() != FieldReturnToHome || team.SupportingPlayer() != nil {
		t.Fatalf("expected ReturnToHome without supporter, got %s", supporter.FieldState())
	}
}

func TestKickCooldown(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	p := m.Teams[Left].Players[1]
	m.Ball.Place(p.Position)
	p.kick(world.Vec2f{X: 1}, 100)
	if p.readyToKick || m.lastKicker != p {
		t.Fatal("kick not recorded")
	}

	m.scheduler.Advance(m.params.KickCooldown - time.Millisecond)
	if p.readyToKick {
		t.Fatal("ready before the cooldown expired")
	}
	m.scheduler.Advance(time.Millisecond)
	if !p.readyToKick {
		t.Fatal("not ready after the cooldown")
	}

	// Entering KickBall while not ready goes back to chasing.
	p.readyToKick = false
	p.setFieldState(FieldKickBall)
	if p.FieldState() != FieldChaseBall || !p.Pursuit {
		t.Fatalf("expected ChaseBall, got %s", p.FieldState())
	}
	if !p.IsControllingPlayer() {
		t.Fatal("expected controlling player")
	}
}

func TestDribble(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	p := m.Teams[Left].Players[1]
	m.Ball.Place(p.Position)

	// Facing the own goal, the player turns by a fifth of a half turn.
	p.Heading = world.Vec2f{X: -1}
	p.setFieldState(FieldDribble)
	dribbleExecute(p)

	if p.FieldState() != FieldChaseBall {
		t.Fatalf("expected ChaseBall, got %s", p.FieldState())
	}
	if dot := p.Heading.Dot(world.Vec2f{X: -1}); math32.Abs(dot-math32.Cos(math32.Pi/5)) > 1e-3 {
		t.Errorf("expected turn by Pi/5, got dot %f", dot)
	}
	if speed := m.Ball.Speed(); math32.Abs(speed-m.params.DribbleTurnPower) > 0.01 {
		t.Errorf("expected turn power, got %f", speed)
	}

	// Facing the opponent goal, the ball is pushed ahead.
	p.readyToKick = true
	p.Heading = world.Vec2f{X: 1}
	p.setFieldState(FieldDribble)
	dribbleExecute(p)
	if m.Ball.Velocity.Y != 0 || math32.Abs(m.Ball.Velocity.X-m.params.DribblePower) > 0.01 {
		t.Errorf("expected dribble along +x, got %v", m.Ball.Velocity)
	}
}

func TestReceiveBall(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	team := m.Teams[Left]
	p := team.Players[3]

	// Far from the opponent goal, with a coin flip that fails, the receiver pursues.
	p.Position = world.Vec2f{X: 600, Y: 352}
	p.handle(Message{Kind: ReceiveBall, Target: p.Position})
	if p.FieldState() != FieldReceiveBall || team.ReceivingPlayer() != p || !team.InControl() {
		t.Fatalf("expected receiving, got %s", p.FieldState())
	}
	if !p.Pursuit || p.Seek {
		t.Fatal("expected pursuit")
	}

	// Once at its target the pursuing receiver waits for the ball.
	m.Ball.Place(world.Vec2f{X: 900, Y: 352})
	p.Target = p.Position
	receiveBallExecute(p)
	if p.FieldState() != FieldReceiveBall || p.Pursuit || !p.trackBall {
		t.Fatalf("expected receiver tracking the ball, got %s", p.FieldState())
	}

	m.Ball.Place(p.Position.Add(world.Vec2f{X: 5}))
	receiveBallExecute(p)
	if p.FieldState() != FieldChaseBall || team.ReceivingPlayer() != nil {
		t.Fatalf("expected ChaseBall without receiver, got %s", p.FieldState())
	}

	// Near the opponent goal without opponents around, the receiver arrives.
	q := team.Players[4]
	q.Position = world.Vec2f{X: 1000, Y: 352}
	q.handle(Message{Kind: ReceiveBall, Target: q.Position})
	if !q.Seek || q.Pursuit {
		t.Fatal("expected seek")
	}

	// A receiver ignores requests to support.
	team.supporting = q
	q.handle(Message{Kind: SupportAttacker})
	if q.FieldState() != FieldReceiveBall || team.SupportingPlayer() != nil {
		t.Fatalf("expected receiver to stay, got %s", q.FieldState())
	}
}

func TestGoHome(t *testing.T) {
	m := newTestMatch(t)
	settle(m)

	for _, p := range m.Teams[Right].Players {
		p.Position = m.Pitch.Center()
		p.handle(Message{Kind: GoHome})
		if p.StateName() != "ReturnToHome" {
			t.Fatalf("%s: expected ReturnToHome, got %s", p.Label(), p.StateName())
		}
		if p.Target != p.Home {
			t.Fatalf("%s: expected target home", p.Label())
		}
	}
}
