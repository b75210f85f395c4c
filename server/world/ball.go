// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

// Ball is the only moving body that is not a player.
// Drag is a constant linear deceleration in units/s² and must not be positive.
type Ball struct {
	Position        Vec2f   `json:"position"`
	Velocity        Vec2f   `json:"velocity"`
	AngularVelocity float32 `json:"angularVelocity"`
	Drag            float32 `json:"-"`
	Bounce          float32 `json:"-"`
	Radius          float32 `json:"radius"`
	// Below StopSpeed the ball is considered at rest.
	StopSpeed float32 `json:"-"`
}

// Kick overwrites velocity with power along direction.
// A zero direction leaves the ball at rest.
func (ball *Ball) Kick(direction Vec2f, power float32) {
	ball.Velocity = direction.Norm().Mul(power)
}

func (ball *Ball) Trap() {
	ball.Velocity = Vec2f{}
	ball.AngularVelocity = 0
}

func (ball *Ball) Place(position Vec2f) {
	ball.Position = position
	ball.Trap()
}

func (ball *Ball) Speed() float32 {
	return ball.Velocity.Length()
}

// Heading is the unit direction of travel, zero at rest.
func (ball *Ball) Heading() Vec2f {
	return ball.Velocity.Norm()
}

// TimeToCoverDistance returns the seconds the ball needs to travel distance when it
// starts at initialSpeed, or -1 if it comes to rest first.
func (ball *Ball) TimeToCoverDistance(distance, initialSpeed float32) float32 {
	if ball.Drag == 0 {
		if initialSpeed <= 0 {
			return -1
		}
		return distance / initialSpeed
	}

	term := initialSpeed*initialSpeed + 2*ball.Drag*distance
	if term <= 0 {
		return -1
	}
	return (math32.Sqrt(term) - initialSpeed) / ball.Drag
}

// timeToStop is how long until the ball is at rest, ignoring StopSpeed.
func (ball *Ball) timeToStop() float32 {
	if ball.Drag >= 0 {
		return math32.Inf(1)
	}
	return ball.Speed() / -ball.Drag
}

// FuturePosition predicts where the ball will be after seconds, assuming it does not
// bounce. The ball never travels backwards, it rests once drag consumed its speed.
func (ball *Ball) FuturePosition(seconds float32) Vec2f {
	speed := ball.Speed()
	if speed == 0 || seconds <= 0 {
		return ball.Position
	}
	seconds = min(seconds, ball.timeToStop())
	distance := speed*seconds + 0.5*ball.Drag*seconds*seconds
	return ball.Position.AddScaled(ball.Velocity.Div(speed), distance)
}

// Update integrates drag over seconds. Position changes by the exact distance
// covered under constant deceleration.
func (ball *Ball) Update(seconds float32) {
	speed := ball.Speed()
	if speed == 0 {
		return
	}

	ball.Position = ball.FuturePosition(seconds)
	newSpeed := max(speed+ball.Drag*seconds, 0)
	if newSpeed < ball.StopSpeed {
		ball.Trap()
		return
	}
	ball.Velocity = ball.Velocity.Mul(newSpeed / speed)
	ball.AngularVelocity *= newSpeed / speed
}

// BounceOff keeps the ball inside bounds, reflecting and damping the velocity
// component that pointed out of them. Returns true if a wall was hit.
func (ball *Ball) BounceOff(bounds AABB) (hit bool) {
	r := ball.Radius
	if ball.Position.X-r < bounds.Left() && ball.Velocity.X < 0 {
		ball.Position.X = bounds.Left() + r
		ball.Velocity.X *= -ball.Bounce
		hit = true
	} else if ball.Position.X+r > bounds.Right() && ball.Velocity.X > 0 {
		ball.Position.X = bounds.Right() - r
		ball.Velocity.X *= -ball.Bounce
		hit = true
	}
	if ball.Position.Y-r < bounds.Top() && ball.Velocity.Y < 0 {
		ball.Position.Y = bounds.Top() + r
		ball.Velocity.Y *= -ball.Bounce
		hit = true
	} else if ball.Position.Y+r > bounds.Bottom() && ball.Velocity.Y > 0 {
		ball.Position.Y = bounds.Bottom() - r
		ball.Velocity.Y *= -ball.Bounce
		hit = true
	}
	return
}
