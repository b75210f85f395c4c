// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math"
)

// Epsilon is the default tolerance of FuzzyEqual.
const Epsilon = 1e-4

type Vec2f struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) Div(divisor float32) Vec2f {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec2f) AddScaled(otherVec Vec2f, factor float32) Vec2f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	return vec
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Dot(otherVec Vec2f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

// Cross is the z component of the 3d cross product.
// Positive if otherVec is counterclockwise of vec.
func (vec Vec2f) Cross(otherVec Vec2f) float32 {
	return vec.X*otherVec.Y - vec.Y*otherVec.X
}

func (vec Vec2f) Angle() Angle {
	return Angle(math32.Atan2(vec.Y, vec.X))
}

// AngleBetween is the unsigned angle between vec and otherVec in [0, Pi].
func (vec Vec2f) AngleBetween(otherVec Vec2f) Angle {
	return otherVec.Angle().Diff(vec.Angle()).Abs()
}

// Rotate rotates counterclockwise by angle.
func (vec Vec2f) Rotate(angle Angle) Vec2f {
	sin, cos := math32.Sincos(float32(angle))
	return Vec2f{
		X: vec.X*cos - vec.Y*sin,
		Y: vec.X*sin + vec.Y*cos,
	}
}

// Rot90 rotates 90 degrees counterclockwise.
func (vec Vec2f) Rot90() Vec2f {
	return Vec2f{X: -vec.Y, Y: vec.X}
}

// RotN90 rotates 90 degrees clockwise.
func (vec Vec2f) RotN90() Vec2f {
	return Vec2f{X: vec.Y, Y: -vec.X}
}

// Rot180 rotates 180 degrees.
func (vec Vec2f) Rot180() Vec2f {
	return Vec2f{X: -vec.X, Y: -vec.Y}
}

func (vec Vec2f) Distance(otherVec Vec2f) float32 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec2f) DistanceSquared(otherVec Vec2f) float32 {
	x := vec.X - otherVec.X
	y := vec.Y - otherVec.Y
	return x*x + y*y
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func (vec Vec2f) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (vec Vec2f) Lerp(otherVec Vec2f, factor float32) Vec2f {
	vec.X = Lerp(vec.X, otherVec.X, factor)
	vec.Y = Lerp(vec.Y, otherVec.Y, factor)
	return vec
}

func (vec Vec2f) Abs() Vec2f {
	vec.X = math32.Abs(vec.X)
	vec.Y = math32.Abs(vec.Y)
	return vec
}

func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

// Norm returns the unit vector of vec, or the zero vector if vec is zero.
func (vec Vec2f) Norm() Vec2f {
	length := vec.Length()
	if length == 0 {
		return Vec2f{}
	}
	return vec.Div(length)
}

// Truncate caps the length of vec to maximum.
func (vec Vec2f) Truncate(maximum float32) Vec2f {
	if lengthSquared := vec.LengthSquared(); lengthSquared > maximum*maximum {
		return vec.Mul(maximum / math32.Sqrt(lengthSquared))
	}
	return vec
}

// FuzzyEqual is true if each component of vec is within epsilon of otherVec.
func (vec Vec2f) FuzzyEqual(otherVec Vec2f, epsilon float32) bool {
	return math32.Abs(vec.X-otherVec.X) <= epsilon && math32.Abs(vec.Y-otherVec.Y) <= epsilon
}

// ToLocal expresses vec in the frame at origin whose x axis is the unit vector axis.
func (vec Vec2f) ToLocal(origin, axis Vec2f) Vec2f {
	delta := vec.Sub(origin)
	return Vec2f{
		X: delta.Dot(axis),
		Y: delta.Dot(axis.Rot90()),
	}
}

func (vec Vec2f) Round() Vec2f {
	vec.X = float32(math.Round(float64(vec.X)))
	vec.Y = float32(math.Round(float64(vec.Y)))
	return vec
}

// TangentPoints returns the two points on the circle (center, radius) whose tangents pass
// through vec. ok is false if vec is inside the circle.
func (vec Vec2f) TangentPoints(center Vec2f, radius float32) (a, b Vec2f, ok bool) {
	toPoint := vec.Sub(center)
	lengthSquared := toPoint.LengthSquared()
	radiusSquared := radius * radius
	if lengthSquared <= radiusSquared {
		return
	}

	inverse := 1 / lengthSquared
	root := math32.Sqrt(math32.Abs(lengthSquared - radiusSquared))

	a = Vec2f{
		X: center.X + radius*(radius*toPoint.X-toPoint.Y*root)*inverse,
		Y: center.Y + radius*(radius*toPoint.Y+toPoint.X*root)*inverse,
	}
	b = Vec2f{
		X: center.X + radius*(radius*toPoint.X+toPoint.Y*root)*inverse,
		Y: center.Y + radius*(radius*toPoint.Y-toPoint.X*root)*inverse,
	}
	ok = true
	return
}
