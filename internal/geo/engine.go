package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/peterstace/simplefeatures/geom"
)

// Engine is the polygon-algebra capability the solver depends on. It is an
// interface so tests and callers can substitute an implementation; the
// default is backed by simplefeatures.
type Engine interface {
	// Covers reports whether every point of inner lies in outer
	// (boundary contact allowed).
	Covers(outer, inner orb.Polygon) (bool, error)
	// Intersects reports whether the two polygons share any point.
	Intersects(a, b orb.Polygon) (bool, error)
	// Overlaps reports whether the interiors of the two polygons
	// intersect without either covering the other.
	Overlaps(a, b orb.Polygon) (bool, error)
	// IntersectionArea returns the area of the intersection.
	IntersectionArea(a, b orb.Polygon) (float64, error)
}

// NewEngine returns the default simplefeatures-backed engine.
func NewEngine() Engine {
	return sfEngine{}
}

type sfEngine struct{}

// toGeom converts an orb polygon into a simplefeatures geometry via WKT.
func toGeom(p orb.Polygon) (geom.Geometry, error) {
	g, err := geom.UnmarshalWKT(wkt.MarshalString(p))
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("convert polygon: %w", err)
	}
	return g, nil
}

func (sfEngine) Covers(outer, inner orb.Polygon) (bool, error) {
	a, err := toGeom(outer)
	if err != nil {
		return false, err
	}
	b, err := toGeom(inner)
	if err != nil {
		return false, err
	}
	return geom.Covers(a, b)
}

func (sfEngine) Intersects(a, b orb.Polygon) (bool, error) {
	ga, err := toGeom(a)
	if err != nil {
		return false, err
	}
	gb, err := toGeom(b)
	if err != nil {
		return false, err
	}
	return geom.Intersects(ga, gb), nil
}

func (sfEngine) Overlaps(a, b orb.Polygon) (bool, error) {
	ga, err := toGeom(a)
	if err != nil {
		return false, err
	}
	gb, err := toGeom(b)
	if err != nil {
		return false, err
	}
	return geom.Overlaps(ga, gb)
}

func (sfEngine) IntersectionArea(a, b orb.Polygon) (float64, error) {
	ga, err := toGeom(a)
	if err != nil {
		return 0, err
	}
	gb, err := toGeom(b)
	if err != nil {
		return 0, err
	}
	inter, err := geom.Intersection(ga, gb)
	if err != nil {
		return 0, fmt.Errorf("intersection: %w", err)
	}
	return inter.Area(), nil
}
