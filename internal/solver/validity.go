package solver

import (
	"github.com/paulmach/orb"

	"github.com/piwi3910/roomfit/internal/geo"
	"github.com/piwi3910/roomfit/internal/model"
)

// Tolerances bundles the numeric thresholds of the placement validity
// predicate. Robust geometry backends introduce tiny slivers at shared
// edges, so exact containment and zero-overlap tests are relaxed by
// these ratios.
type Tolerances struct {
	// CoverageRatio is the minimum fraction of an item's area that must
	// lie inside the room when strict containment fails.
	CoverageRatio float64

	// DoorOverlapArea is the largest intersection area with the door
	// zone still treated as a touch rather than a blockage.
	DoorOverlapArea float64

	// CollisionRatio is the largest fraction of a candidate's area that
	// may intersect an already committed footprint.
	CollisionRatio float64
}

// DefaultTolerances returns the thresholds used by the solver unless
// overridden via WithTolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		CoverageRatio:   0.999,
		DoorOverlapArea: 1e-6,
		CollisionRatio:  0.01,
	}
}

// validator evaluates whether a candidate footprint may be committed.
// Geometry backend errors are treated as rejections: a pose we cannot
// verify is a pose we do not accept.
type validator struct {
	eng      geo.Engine
	tol      Tolerances
	room     orb.Polygon
	doorZone orb.Polygon
}

// valid reports whether body (and clearance, when non-nil) fits the room,
// keeps clear of the door zone, and does not collide with any committed
// item. Clearance zones of separate items are allowed to overlap each
// other: swept door arcs may share floor space.
func (v *validator) valid(body, clearance orb.Polygon, placed []model.PlacedItem) bool {
	if !v.covered(body) {
		return false
	}
	if v.doorBlocked(body) {
		return false
	}
	bodyArea := geo.Area(body)
	for i := range placed {
		if v.collides(body, placed[i].Body, bodyArea) {
			return false
		}
		if placed[i].Clearance != nil && v.collides(body, placed[i].Clearance, bodyArea) {
			return false
		}
	}
	if clearance == nil {
		return true
	}
	if !v.covered(clearance) {
		return false
	}
	clearArea := geo.Area(clearance)
	if v.collides(clearance, v.doorZone, clearArea) {
		return false
	}
	for i := range placed {
		if v.collides(clearance, placed[i].Body, clearArea) {
			return false
		}
	}
	return true
}

func (v *validator) covered(p orb.Polygon) bool {
	if ok, err := v.eng.Covers(v.room, p); err == nil && ok {
		return true
	}
	inter, err := v.eng.IntersectionArea(v.room, p)
	if err != nil {
		return false
	}
	return inter >= geo.Area(p)*v.tol.CoverageRatio
}

func (v *validator) doorBlocked(body orb.Polygon) bool {
	hit, err := v.eng.Intersects(body, v.doorZone)
	if err != nil {
		return true
	}
	if !hit {
		return false
	}
	inter, err := v.eng.IntersectionArea(body, v.doorZone)
	if err != nil {
		return true
	}
	return inter > v.tol.DoorOverlapArea
}

// collides reports whether candidate intersects other by more than the
// collision tolerance, measured against candidateArea.
func (v *validator) collides(candidate, other orb.Polygon, candidateArea float64) bool {
	over, err := v.eng.Overlaps(candidate, other)
	if err != nil {
		return true
	}
	if over {
		return true
	}
	hit, err := v.eng.Intersects(candidate, other)
	if err != nil {
		return true
	}
	if !hit {
		return false
	}
	inter, err := v.eng.IntersectionArea(candidate, other)
	if err != nil {
		return true
	}
	return inter > candidateArea*v.tol.CollisionRatio
}
