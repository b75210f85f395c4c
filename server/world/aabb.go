// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned rectangle. Vec2f is the corner with the smallest coordinates.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// Intersects a and b are intersecting
func (a AABB) Intersects(b AABB) bool {
	return a.X+a.Width >= b.X && a.X <= b.X+b.Width && a.Y+a.Height >= b.Y && a.Y <= b.Height+b.Y
}

// Contains a fully contains b
func (a AABB) Contains(b AABB) bool {
	return a.X <= b.X && a.Y <= b.Y && a.X+a.Width >= b.X+b.Width && a.Y+a.Height >= b.Y+b.Height
}

// ContainsPoint is inclusive of the edges.
func (a AABB) ContainsPoint(point Vec2f) bool {
	return point.X >= a.X && point.X <= a.X+a.Width && point.Y >= a.Y && point.Y <= a.Y+a.Height
}

// IntersectsCircle a and circle overlap
func (a AABB) IntersectsCircle(circle Circle) bool {
	closest := Vec2f{
		X: clamp(circle.Center.X, a.X, a.X+a.Width),
		Y: clamp(circle.Center.Y, a.Y, a.Y+a.Height),
	}
	return closest.DistanceSquared(circle.Center) <= square(circle.Radius)
}

func (a AABB) Center() Vec2f {
	return Vec2f{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

func (a AABB) Left() float32   { return a.X }
func (a AABB) Right() float32  { return a.X + a.Width }
func (a AABB) Top() float32    { return a.Y }
func (a AABB) Bottom() float32 { return a.Y + a.Height }

// Clamp moves point to the nearest point inside a, shrunk by margin.
func (a AABB) Clamp(point Vec2f, margin float32) Vec2f {
	return Vec2f{
		X: clamp(point.X, a.X+margin, a.X+a.Width-margin),
		Y: clamp(point.Y, a.Y+margin, a.Y+a.Height-margin),
	}
}

// CornerCoordinates Center coords to corner coords
func (a AABB) CornerCoordinates() AABB {
	a.Vec2f = Vec2f{X: a.X - a.Width*0.5, Y: a.Y - a.Height*0.5}
	return a
}

type Circle struct {
	Center Vec2f   `json:"center"`
	Radius float32 `json:"radius"`
}

// Contains is strict, a point on the circumference is outside.
func (c Circle) Contains(point Vec2f) bool {
	return c.Center.DistanceSquared(point) < square(c.Radius)
}
