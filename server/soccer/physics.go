// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"github.com/SoftbearStudios/soccer/server/world"
)

// Physics moves the ball and players. Players only write their Velocity, and the
// ball only changes through kicks, so a Physics may treat everything else as its own.
type Physics interface {
	Step(ball *world.Ball, players []*Player, seconds float32)
}

// Kinematics is the default Physics. It integrates drag and velocities, bounces the
// ball off the touch lines and goal lines, and lets it into the nets through the
// goal mouths. Players are kept on the pitch and pass through each other.
type Kinematics struct {
	Pitch world.Pitch
	Goals [2]*world.Goal
}

func NewKinematics(pitch world.Pitch, goals [2]*world.Goal) *Kinematics {
	return &Kinematics{Pitch: pitch, Goals: goals}
}

func (k *Kinematics) Step(ball *world.Ball, players []*Player, seconds float32) {
	ball.Update(seconds)
	ball.BounceOff(k.ballBounds(ball))

	for _, p := range players {
		p.Position = k.Pitch.Bounds.Clamp(p.Position.AddScaled(p.Velocity, seconds), 0)
	}
}

// ballBounds is the pitch, extended into a net when the ball is level with its mouth.
func (k *Kinematics) ballBounds(ball *world.Ball) world.AABB {
	bounds := k.Pitch.Bounds
	for _, goal := range k.Goals {
		if goal == nil {
			continue
		}
		net := goal.ScoringBounds()
		if ball.Position.Y-ball.Radius < net.Top() || ball.Position.Y+ball.Radius > net.Bottom() {
			// Not level with this mouth, unless already inside the net.
			if !net.ContainsPoint(ball.Position) {
				continue
			}
			return net
		}
		if goal.Facing.X > 0 {
			bounds.Width += bounds.X - net.X
			bounds.X = net.X
		} else {
			bounds.Width = net.Right() - bounds.X
		}
	}
	return bounds
}
