// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Pitch is the playing area between the goal lines.
type Pitch struct {
	Bounds AABB `json:"bounds"`
}

func NewPitch(left, top, width, height float32) Pitch {
	return Pitch{Bounds: AABBFrom(left, top, width, height)}
}

func (pitch Pitch) Center() Vec2f {
	return pitch.Bounds.Center()
}

func (pitch Pitch) Width() float32 {
	return pitch.Bounds.Width
}

func (pitch Pitch) Height() float32 {
	return pitch.Bounds.Height
}

func (pitch Pitch) Contains(point Vec2f) bool {
	return pitch.Bounds.ContainsPoint(point)
}

// Goals returns a left goal facing +x and a right goal facing -x, centered on the
// goal lines.
func (pitch Pitch) Goals(height, depth float32) (left, right *Goal) {
	center := pitch.Center()
	left = NewGoal(Vec2f{X: pitch.Bounds.Left(), Y: center.Y}, 1, height, depth)
	right = NewGoal(Vec2f{X: pitch.Bounds.Right(), Y: center.Y}, -1, height, depth)
	return
}
