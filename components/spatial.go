package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Position represents an entity's world position (box center).
type Position struct {
	r3.Vec
}

// Velocity represents an entity's linear velocity in units per second.
type Velocity struct {
	r3.Vec
}

// Rotation represents an entity's look orientation.
type Rotation struct {
	Yaw   float64 // degrees, positive turns right
	Pitch float64 // degrees, positive looks up
}

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min, Max r3.Vec
}

// BoxAt returns the box of the given half extents centered on c.
func BoxAt(c, half r3.Vec) AABB {
	return AABB{Min: r3.Sub(c, half), Max: r3.Add(c, half)}
}

// Center returns the box midpoint.
func (b AABB) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// HalfExtents returns half the box size on each axis.
func (b AABB) HalfExtents() r3.Vec {
	return r3.Scale(0.5, r3.Sub(b.Max, b.Min))
}

// Overlaps reports whether two boxes intersect with positive volume.
// Boxes that only share a face do not overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Up is the world up axis.
var Up = r3.Vec{Y: 1}

// Forward returns the horizontal unit facing for a yaw in degrees.
// Yaw zero faces +Z; positive yaw turns right.
func Forward(yaw float64) r3.Vec {
	s, c := math.Sincos(yaw * math.Pi / 180)
	return r3.Vec{X: -s, Z: c}
}

// Right returns the horizontal unit right vector for a yaw in degrees.
func Right(yaw float64) r3.Vec {
	return r3.Cross(Forward(yaw), Up)
}

// LocalToWorld maps a body-local vector (X right, Y up, Z forward) into world space.
func LocalToWorld(yaw float64, v r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(v.X, Right(yaw)), r3.Scale(v.Y, Up)), r3.Scale(v.Z, Forward(yaw)))
}
