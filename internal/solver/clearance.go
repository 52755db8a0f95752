package solver

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/roomfit/internal/geo"
	"github.com/piwi3910/roomfit/internal/model"
)

const (
	// Outward doors only need a thin strip kept clear in front of the
	// door line: 5% of the door width, capped at 50 length units.
	outwardBufferRatio = 0.05
	outwardBufferCap   = 50.0

	// Safety-net buffer radius for a degenerate (zero-length) door.
	minDoorBuffer = 1.0
)

// BuildDoorZone constructs the polygon no item may overlap.
//
// An inward-opening door sweeps over a square as wide as the door, on the
// room side of the door line. The square is first tried offset along the
// door's perpendicular; if the room does not cover it, the opposite
// perpendicular is tried; if neither candidate fits the room, a buffer of
// radius width/2 around the door segment is used instead.
//
// An outward-opening door only needs the door line itself kept reachable,
// so the zone is a thin segment buffer.
func BuildDoorZone(door model.Door, room orb.Polygon, eng geo.Engine) orb.Polygon {
	width := door.Width()
	if width == 0 {
		return geo.SegmentBuffer(door.A, door.B, minDoorBuffer)
	}
	if !door.OpensInward {
		radius := math.Min(width*outwardBufferRatio, outwardBufferCap)
		return geo.SegmentBuffer(door.A, door.B, radius)
	}

	midX := (door.A[0] + door.B[0]) / 2
	midY := (door.A[1] + door.B[1]) / 2
	ux := (door.B[0] - door.A[0]) / width
	uy := (door.B[1] - door.A[1]) / width
	// Perpendicular to the door line; sign flipped on the second try.
	px, py := -uy, ux

	half := width / 2
	for _, sign := range []float64{1, -1} {
		cx := midX + sign*px*half
		cy := midY + sign*py*half
		zone := geo.Box(cx-half, cy-half, cx+half, cy+half)
		if ok, err := eng.Covers(room, zone); err == nil && ok {
			return zone
		}
	}
	return geo.SegmentBuffer(door.A, door.B, half)
}

// FridgeClearance returns the door-swing exclusion zone of a refrigerator:
// a rectangle spanning the whole length edge (the edge at local +width/2),
// extending length/2 in front of it, transformed to the item's pose. Both
// doors of a double-door unit swing over this same area.
func FridgeClearance(center orb.Point, length, width, deg float64) orb.Polygon {
	zone := geo.Box(-length/2, width/2, length/2, width/2+length/2)
	zone = geo.Rotate(zone, deg, orb.Point{0, 0})
	return geo.Translate(zone, center[0], center[1])
}
