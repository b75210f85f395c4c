// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Goal is a rectangular net behind a goal line.
// Position is the center of the goal line and Facing points into the pitch.
type Goal struct {
	Position Vec2f   `json:"position"`
	Facing   Vec2f   `json:"facing"`
	Height   float32 `json:"height"`
	Depth    float32 `json:"depth"`
	Scored   int     `json:"scored"`
}

func NewGoal(position Vec2f, facingX float32, height, depth float32) *Goal {
	if facingX < 0 {
		facingX = -1
	} else {
		facingX = 1
	}
	return &Goal{
		Position: position,
		Facing:   Vec2f{X: facingX},
		Height:   height,
		Depth:    depth,
	}
}

// LeftPost and RightPost are the ends of the goal mouth, smallest y first.
func (goal *Goal) LeftPost() Vec2f {
	return Vec2f{X: goal.Position.X, Y: goal.Position.Y - goal.Height*0.5}
}

func (goal *Goal) RightPost() Vec2f {
	return Vec2f{X: goal.Position.X, Y: goal.Position.Y + goal.Height*0.5}
}

// ScoringBounds is the inside of the net, behind the goal line.
func (goal *Goal) ScoringBounds() AABB {
	x := goal.Position.X
	if goal.Facing.X > 0 {
		x -= goal.Depth
	}
	return AABBFrom(x, goal.Position.Y-goal.Height*0.5, goal.Depth, goal.Height)
}

// Scores is true once the whole ball crossed the goal line inside the mouth.
func (goal *Goal) Scores(ball *Ball) bool {
	bounds := goal.ScoringBounds()
	if ball.Position.Y < bounds.Top() || ball.Position.Y > bounds.Bottom() {
		return false
	}
	// Distance past the line, positive inside the net.
	behind := goal.Position.Sub(ball.Position).Dot(goal.Facing)
	return behind > ball.Radius && behind <= goal.Depth+ball.Radius
}

// MouthY clamps y into the goal mouth, inset by margin.
func (goal *Goal) MouthY(y, margin float32) float32 {
	return clamp(y, goal.Position.Y-goal.Height*0.5+margin, goal.Position.Y+goal.Height*0.5-margin)
}
