package scene

import (
	"math"

	"github.com/tatianab/escape-room/internal/models"
)

// DefaultRayRadius widens the ray so thin wall objects can be aimed at with
// coarse turn steps.
const DefaultRayRadius = 0.2

// Raycaster finds the nearest interactable along the player's view.
type Raycaster struct {
	// Radius grows every footprint before intersecting.
	Radius float64
	// MaxDistance limits reach; zero means unlimited.
	MaxDistance float64
}

// NewRaycaster returns a raycaster with the default radius and no reach limit.
func NewRaycaster() Raycaster {
	return Raycaster{Radius: DefaultRayRadius}
}

// Target casts from the pose along its heading.
func (r Raycaster) Target(p Pose, objects []*models.Interactable) (models.Handle, bool) {
	h, _, ok := r.Cast(p.Position, p.Forward(), objects)
	return h, ok
}

// Cast returns the first object hit by the ray from origin along dir and the
// distance to it. Ties keep the earlier object.
func (r Raycaster) Cast(origin, dir models.Vec2, objects []*models.Interactable) (models.Handle, float64, bool) {
	var (
		best     models.Handle
		bestDist = math.Inf(1)
		found    bool
	)
	for _, obj := range objects {
		t, ok := intersect(origin, dir, obj.Footprint.Min(r.Radius), obj.Footprint.Max(r.Radius))
		if !ok {
			continue
		}
		if r.MaxDistance > 0 && t > r.MaxDistance {
			continue
		}
		if t < bestDist {
			best, bestDist, found = obj.Handle, t, true
		}
	}
	return best, bestDist, found
}

// intersect is the slab test for a ray against an axis-aligned box. A ray
// starting inside the box hits at distance zero.
func intersect(o, d, lo, hi models.Vec2) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)

	for _, axis := range [2]struct{ o, d, lo, hi float64 }{
		{o.X, d.X, lo.X, hi.X},
		{o.Z, d.Z, lo.Z, hi.Z},
	} {
		if math.Abs(axis.d) < 1e-12 {
			if axis.o < axis.lo || axis.o > axis.hi {
				return 0, false
			}
			continue
		}
		t1 := (axis.lo - axis.o) / axis.d
		t2 := (axis.hi - axis.o) / axis.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
