// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
	"time"
)

// Player is either a field player or the goalkeeper, depending on Role. Both share
// the steering base, and each role runs its own state machine.
type Player struct {
	Index int
	Name  string
	Role  Role
	Goals int

	Position world.Vec2f
	Velocity world.Vec2f
	// Heading is a unit vector, the direction the player faces.
	Heading world.Vec2f
	// Speed is the maximum speed.
	Speed  float32
	Radius float32

	Home   world.Vec2f
	Target world.Vec2f

	// Steering modes. Pursuit and Interpose move Target each tick before it is sought.
	Seek      bool
	Pursuit   bool
	Interpose bool
	// trackBall turns the player toward the ball regardless of movement.
	trackBall bool

	label       string
	slot        Slot
	team        *Team
	fieldState  FieldState
	keeperState KeeperState
	started     bool

	readyToKick bool
	kickTimer   TimerID
	// holdUntil is when a goalkeeper holding the ball starts looking for a pass.
	holdUntil time.Duration
}

// Label identifies the player in its match, even if names repeat.
func (p *Player) Label() string {
	return p.label
}

func (p *Player) Team() *Team {
	return p.team
}

func (p *Player) match() *Match {
	return p.team.match
}

func (p *Player) ball() *world.Ball {
	return p.team.match.Ball
}

func (p *Player) params() *Params {
	return &p.team.match.params
}

func (p *Player) IsGoalkeeper() bool {
	return p.Role == Goalkeeper
}

// StateName is the name of the current state of whichever machine the role runs.
func (p *Player) StateName() string {
	return p.state().name
}

func (p *Player) FieldState() FieldState {
	return p.fieldState
}

func (p *Player) KeeperState() KeeperState {
	return p.keeperState
}

// Steering

func (p *Player) stop() {
	p.Seek = false
	p.Pursuit = false
	p.Interpose = false
	p.Velocity = world.Vec2f{}
}

func (p *Player) seekTo(target world.Vec2f) {
	p.Target = target
	p.Seek = true
	p.trackBall = false
}

// track stops the player and turns it toward the ball.
func (p *Player) track() {
	p.stop()
	p.trackBall = true
}

// pursuitTarget is where the ball will be once the player could reach where it is now.
func (p *Player) pursuitTarget() world.Vec2f {
	ball := p.ball()
	speed := ball.Speed()
	if speed == 0 {
		return ball.Position
	}
	return ball.FuturePosition(ball.Position.Distance(p.Position) / speed)
}

// rearInterposeTarget is the point of the own goal mouth that mirrors the ball's
// height on the pitch.
func (p *Player) rearInterposeTarget() world.Vec2f {
	goal := p.team.goal
	pitch := p.match().Pitch
	ball := p.ball()
	return world.Vec2f{
		X: goal.Position.X,
		Y: pitch.Center().Y - goal.Height*0.5 + (ball.Position.Y-pitch.Bounds.Top())*goal.Height/pitch.Height(),
	}
}

// interposeTarget is on the segment from the rear interpose target to the ball, at
// most the tending distance away from the goal mouth.
func (p *Player) interposeTarget() world.Vec2f {
	rear := p.rearInterposeTarget()
	toBall := p.ball().Position.Sub(rear)
	return rear.Add(toBall.Truncate(p.params().TendingDistance))
}

// steer converts the active steering modes into a velocity that does not overshoot
// the target within seconds.
func (p *Player) steer(seconds float32) {
	if p.Pursuit {
		p.Target = p.pursuitTarget()
	}
	if p.Interpose {
		p.Target = p.interposeTarget()
	}

	if p.Seek || p.Pursuit || p.Interpose {
		p.Velocity = p.seek(p.Target, seconds)
	} else {
		p.Velocity = world.Vec2f{}
	}

	if p.trackBall || p.Interpose {
		if toBall := p.ball().Position.Sub(p.Position); toBall.LengthSquared() > 0 {
			p.Heading = toBall.Norm()
		}
	} else if p.Velocity.LengthSquared() > 0 {
		p.Heading = p.Velocity.Norm()
	}
}

func (p *Player) seek(target world.Vec2f, seconds float32) world.Vec2f {
	delta := target.Sub(p.Position)
	if seconds > 0 && delta.Length() <= p.Speed*seconds {
		return delta.Div(seconds)
	}
	return delta.Norm().Mul(p.Speed)
}

// kick is the only way players move the ball. The player is not ready to kick again
// until the cooldown expires.
func (p *Player) kick(direction world.Vec2f, power float32) {
	m := p.match()
	m.Ball.Kick(direction, power)
	m.lastKicker = p

	p.readyToKick = false
	m.scheduler.Cancel(p.kickTimer)
	p.kickTimer = m.scheduler.After(m.params.KickCooldown, func() {
		p.readyToKick = true
		p.kickTimer = 0
	})
}

// Predicates

func (p *Player) isNear(point world.Vec2f, distance float32) bool {
	return p.Position.DistanceSquared(point) < distance*distance
}

func (p *Player) IsAtTarget() bool {
	return p.isNear(p.Target, p.params().AtTargetRange)
}

func (p *Player) IsAtHome() bool {
	return p.isNear(p.Home, p.params().HomeRange)
}

func (p *Player) distanceSquaredToBall() float32 {
	return p.Position.DistanceSquared(p.ball().Position)
}

func (p *Player) IsClosestTeamMemberToBall() bool {
	return p.team.closest == p
}

// IsClosestPlayerOnPitchToBall is true if no player of either team is strictly closer.
func (p *Player) IsClosestPlayerOnPitchToBall() bool {
	d := p.distanceSquaredToBall()
	for _, team := range p.match().Teams {
		for _, other := range team.Players {
			if other != p && other.distanceSquaredToBall() < d {
				return false
			}
		}
	}
	return true
}

func (p *Player) IsControllingPlayer() bool {
	return p.team.controlling == p
}

// IsThreatened is true if an opponent ahead of the player is inside its comfort zone.
func (p *Player) IsThreatened() bool {
	comfort := p.params().ComfortZone
	for _, opponent := range p.team.opponents.Players {
		toOpponent := opponent.Position.Sub(p.Position)
		if toOpponent.Dot(p.Heading) > 0 && toOpponent.LengthSquared() < comfort*comfort {
			return true
		}
	}
	return false
}

func (p *Player) BallWithinKickingRange() bool {
	return p.isNear(p.ball().Position, p.params().KickingRange)
}

func (p *Player) BallWithinReceivingRange() bool {
	return p.isNear(p.ball().Position, p.params().ReceivingRange)
}

func (p *Player) BallWithinKeeperRange() bool {
	return p.isNear(p.ball().Position, p.params().KeeperRange)
}

// BallWithinInterceptRange measures from the center of the own goal.
func (p *Player) BallWithinInterceptRange() bool {
	r := p.params().KeeperInterceptRange
	return p.team.goal.Position.DistanceSquared(p.ball().Position) < r*r
}

func (p *Player) IsTooFarFromGoalMouth() bool {
	return !p.isNear(p.rearInterposeTarget(), p.params().KeeperInterceptRange)
}

// IsAheadOfAttacker is true if the player is closer to the opponent goal line than
// the controlling player.
func (p *Player) IsAheadOfAttacker() bool {
	controlling := p.team.controlling
	if controlling == nil {
		return false
	}
	x := p.team.opponentGoal.Position.X
	return abs(p.Position.X-x) < abs(controlling.Position.X-x)
}

// IsInHotPosition is true inside the third of the pitch nearest the opponent goal.
func (p *Player) IsInHotPosition() bool {
	return abs(p.Position.X-p.team.opponentGoal.Position.X) < p.match().Pitch.Width()/3
}

// State machine

// state is one row of a state table.
type state struct {
	name    string
	enter   func(p *Player)
	execute func(p *Player)
	exit    func(p *Player)
	// message returns false if the message was ignored.
	message func(p *Player, message Message) bool
}

func (p *Player) state() *state {
	if p.Role == Goalkeeper {
		return &keeperStates[p.keeperState]
	}
	return &fieldStates[p.fieldState]
}

func (p *Player) transition(set func()) {
	from := p.state()
	if from.exit != nil {
		from.exit(p)
	}
	set()
	to := p.state()
	p.match().observer.Transition(p.label, from.name, to.name)
	if to.enter != nil {
		to.enter(p)
	}
}

func (p *Player) start() {
	p.started = true
	if s := p.state(); s.enter != nil {
		s.enter(p)
	}
}

func (p *Player) update(seconds float32) {
	if !p.started {
		p.start()
	}
	if s := p.state(); s.execute != nil {
		s.execute(p)
	}
	p.steer(seconds)
}

func (p *Player) handle(message Message) bool {
	if s := p.state(); s.message != nil {
		return s.message(p, message)
	}
	return false
}

// send publishes message from p to receiver.
func (p *Player) send(receiver *Player, kind MessageKind, target world.Vec2f) {
	p.match().postbox.Publish(Message{Kind: kind, Sender: p, Receiver: receiver, Target: target})
}
