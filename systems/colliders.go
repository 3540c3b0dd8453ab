// Package systems provides ECS systems and world queries for the movement simulation.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
)

// Hit describes the first collider struck by a ray.
type Hit struct {
	Entity   ecs.Entity
	Point    r3.Vec
	Normal   r3.Vec
	Distance float64
	Layer    components.Layer
}

// Colliders indexes the static collider entities of a world for ray and overlap queries.
// Colliders never move, so the index keeps a copy of each box next to its entity
// and buckets it once in a spatial grid.
type Colliders struct {
	mapper  *ecs.Map[components.Collider]
	entries []colliderEntry
	grid    *SpatialGrid
	scratch []int
}

type colliderEntry struct {
	e ecs.Entity
	c components.Collider
}

// NewColliders creates an empty collider index for the world.
func NewColliders(w *ecs.World) *Colliders {
	return &Colliders{
		mapper: ecs.NewMap[components.Collider](w),
		grid:   NewSpatialGrid(DefaultCellSize),
	}
}

// Add creates a collider entity and indexes it.
func (cs *Colliders) Add(c components.Collider) ecs.Entity {
	e := cs.mapper.NewEntity(&c)
	cs.entries = append(cs.entries, colliderEntry{e: e, c: c})
	cs.grid.Insert(len(cs.entries)-1, c.Box)
	return e
}

// Len returns the number of indexed colliders.
func (cs *Colliders) Len() int {
	return len(cs.entries)
}

// Each calls fn for every collider in insertion order.
func (cs *Colliders) Each(fn func(e ecs.Entity, c components.Collider)) {
	for _, en := range cs.entries {
		fn(en.e, en.c)
	}
}

// Raycast returns the nearest collider on mask hit by the ray within length.
// dir need not be normalized; a zero direction never hits.
func (cs *Colliders) Raycast(origin, dir r3.Vec, length float64, mask components.LayerMask) (Hit, bool) {
	n := r3.Norm(dir)
	if n == 0 || length <= 0 {
		return Hit{}, false
	}
	d := r3.Scale(1/n, dir)

	end := r3.Add(origin, r3.Scale(length, d))
	reach := components.AABB{
		Min: r3.Vec{X: min(origin.X, end.X), Y: min(origin.Y, end.Y), Z: min(origin.Z, end.Z)},
		Max: r3.Vec{X: max(origin.X, end.X), Y: max(origin.Y, end.Y), Z: max(origin.Z, end.Z)},
	}

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, i := range cs.near(reach) {
		en := cs.entries[i]
		if !mask.Has(en.c.Layer) {
			continue
		}
		t, normal, ok := rayBox(origin, d, en.c.Box)
		if !ok || t > length || t >= best.Distance {
			continue
		}
		best = Hit{
			Entity:   en.e,
			Point:    r3.Add(origin, r3.Scale(t, d)),
			Normal:   normal,
			Distance: t,
			Layer:    en.c.Layer,
		}
		found = true
	}
	return best, found
}

// Overlapping appends to dst every collider on mask whose box overlaps box.
// Reuse dst across calls to avoid allocations.
func (cs *Colliders) Overlapping(box components.AABB, mask components.LayerMask, dst []ecs.Entity) []ecs.Entity {
	for _, i := range cs.near(box) {
		en := cs.entries[i]
		if mask.Has(en.c.Layer) && en.c.Box.Overlaps(box) {
			dst = append(dst, en.e)
		}
	}
	return dst
}

// near returns the indices of entries sharing a grid cell with box, ascending.
// The result is only valid until the next call.
func (cs *Colliders) near(box components.AABB) []int {
	cs.scratch = cs.grid.QueryInto(cs.scratch[:0], box)
	return cs.scratch
}

// rayBox intersects a unit-direction ray with a box using the slab method.
// A ray starting inside the box hits at distance zero facing back along the ray.
func rayBox(o, d r3.Vec, b components.AABB) (float64, r3.Vec, bool) {
	if b.Contains(o) {
		return 0, r3.Scale(-1, d), true
	}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	var normal r3.Vec

	axes := [3]struct{ o, d, lo, hi float64 }{
		{o.X, d.X, b.Min.X, b.Max.X},
		{o.Y, d.Y, b.Min.Y, b.Max.Y},
		{o.Z, d.Z, b.Min.Z, b.Max.Z},
	}
	for i, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, r3.Vec{}, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = axisVec(i, sign)
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, r3.Vec{}, false
		}
	}
	if tmin < 0 {
		return 0, r3.Vec{}, false
	}
	return tmin, normal, true
}

func axisVec(i int, s float64) r3.Vec {
	switch i {
	case 0:
		return r3.Vec{X: s}
	case 1:
		return r3.Vec{Y: s}
	default:
		return r3.Vec{Z: s}
	}
}
