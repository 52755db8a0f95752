// Package geo is the planar-geometry boundary of the solver. It provides
// polygon construction helpers on orb types and an Engine interface for the
// boolean operations (covers, intersection, overlap) that the solver never
// implements itself.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// capSegments is the number of straight segments used to approximate each
// semicircular end cap of a segment buffer.
const capSegments = 16

// NewPolygon builds a single-ring polygon from an ordered point list.
// A duplicated closing point is tolerated; the ring is always closed.
func NewPolygon(pts []orb.Point) orb.Polygon {
	if len(pts) == 0 {
		return orb.Polygon{}
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	ring = append(ring, pts...)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Box returns an axis-aligned rectangle polygon.
func Box(minX, minY, maxX, maxY float64) orb.Polygon {
	return NewPolygon([]orb.Point{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
	})
}

// Rotate rotates a polygon by deg degrees counter-clockwise about origin.
func Rotate(p orb.Polygon, deg float64, origin orb.Point) orb.Polygon {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			dx := pt[0] - origin[0]
			dy := pt[1] - origin[1]
			r[j] = orb.Point{
				origin[0] + dx*cos - dy*sin,
				origin[1] + dx*sin + dy*cos,
			}
		}
		out[i] = r
	}
	return out
}

// Translate shifts a polygon by dx, dy.
func Translate(p orb.Polygon, dx, dy float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			r[j] = orb.Point{pt[0] + dx, pt[1] + dy}
		}
		out[i] = r
	}
	return out
}

// Rectangle builds a length x width rectangle centered at center, rotated by
// deg degrees about its own center.
func Rectangle(center orb.Point, length, width, deg float64) orb.Polygon {
	p := Box(-length/2, -width/2, length/2, width/2)
	p = Rotate(p, deg, orb.Point{0, 0})
	return Translate(p, center[0], center[1])
}

// SegmentBuffer returns a capsule: the set of points within radius of the
// segment a-b, approximated by a rectangle with polygonal semicircle caps.
// A degenerate (zero-length) segment yields a plain polygonal circle.
func SegmentBuffer(a, b orb.Point, radius float64) orb.Polygon {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		pts := make([]orb.Point, capSegments*2)
		for i := range pts {
			ang := 2 * math.Pi * float64(i) / float64(len(pts))
			pts[i] = orb.Point{a[0] + radius*math.Cos(ang), a[1] + radius*math.Sin(ang)}
		}
		return NewPolygon(pts)
	}
	ux, uy := dx/norm, dy/norm
	// Perpendicular unit vector.
	px, py := -uy, ux
	base := math.Atan2(py, px)

	var pts []orb.Point
	// Side from a to b offset by +radius, then the cap around b, then the
	// opposite side, then the cap around a.
	pts = append(pts, orb.Point{a[0] + px*radius, a[1] + py*radius})
	pts = append(pts, orb.Point{b[0] + px*radius, b[1] + py*radius})
	for i := 1; i < capSegments; i++ {
		ang := base - math.Pi*float64(i)/float64(capSegments)
		pts = append(pts, orb.Point{b[0] + radius*math.Cos(ang), b[1] + radius*math.Sin(ang)})
	}
	pts = append(pts, orb.Point{b[0] - px*radius, b[1] - py*radius})
	pts = append(pts, orb.Point{a[0] - px*radius, a[1] - py*radius})
	for i := 1; i < capSegments; i++ {
		ang := base - math.Pi - math.Pi*float64(i)/float64(capSegments)
		pts = append(pts, orb.Point{a[0] + radius*math.Cos(ang), a[1] + radius*math.Sin(ang)})
	}
	return NewPolygon(pts)
}

// Area returns the unsigned area of a polygon.
func Area(p orb.Polygon) float64 {
	return math.Abs(planar.Area(p))
}

// ContainsPoint reports whether pt lies inside the polygon.
func ContainsPoint(p orb.Polygon, pt orb.Point) bool {
	return planar.PolygonContains(p, pt)
}

// Bound returns the bounding box of a polygon.
func Bound(p orb.Polygon) orb.Bound {
	return p.Bound()
}
