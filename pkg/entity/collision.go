package entity

import (
	"math"

	"github.com/opd-ai/go-lander/pkg/physics"
)

// SamplePoints returns the four corners and four edge midpoints of o in
// world space, honoring its rotation.
func SamplePoints(o *Object) [8]physics.Vector2D {
	w, h := o.Size.Width, o.Size.Height
	local := [8]physics.Vector2D{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
		{X: w / 2, Y: 0},
		{X: w, Y: h / 2},
		{X: w / 2, Y: h},
		{X: 0, Y: h / 2},
	}
	var out [8]physics.Vector2D
	for i, p := range local {
		out[i] = o.ObjectToWorld(p)
	}
	return out
}

// BroadPhase is a cheap pre-check compared on the lengths of the local
// center vectors. It only rejects when one of them is zero and does not
// consider world positions.
func BroadPhase(a, b *Object) bool {
	ra := a.Center().Length()
	rb := b.Center().Length()
	return math.Abs(ra-rb) < ra+rb
}

// CheckCollisions tests self's sample points against every other enabled
// collider and calls self.OnCollision once per collider hit. It returns the
// number of colliders hit.
func CheckCollisions(w World, self Collider) int {
	obj := self.Base()
	points := SamplePoints(obj)

	hits := 0
	for _, other := range w.Colliders() {
		if other == self || !other.Base().Enabled {
			continue
		}
		if !BroadPhase(obj, other.Base()) {
			continue
		}
		for _, p := range points {
			if other.IsPointInside(p) {
				self.OnCollision(w, other)
				hits++
				break
			}
		}
	}
	return hits
}
