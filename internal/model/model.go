package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ItemKind classifies an item for clearance purposes.
type ItemKind int

const (
	ItemStandard     ItemKind = iota // No extra clearance
	ItemRefrigerator                 // Reserves a door-swing zone in front of the length edge
)

func (k ItemKind) String() string {
	switch k {
	case ItemRefrigerator:
		return "Refrigerator"
	default:
		return "Standard"
	}
}

// KindFromName resolves the item kind from its name. This happens once at
// parse time; the solver only ever looks at the resolved kind.
func KindFromName(name string) ItemKind {
	if strings.Contains(name, "fridge") {
		return ItemRefrigerator
	}
	return ItemStandard
}

// ItemSpec is a named rectangular appliance to place. Length is always the
// larger dimension, Width the smaller, regardless of input order.
type ItemSpec struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Length float64  `json:"length"`
	Width  float64  `json:"width"`
	Kind   ItemKind `json:"kind"`
}

func NewItemSpec(name string, dim1, dim2 float64) ItemSpec {
	return ItemSpec{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Length: math.Max(dim1, dim2),
		Width:  math.Min(dim1, dim2),
		Kind:   KindFromName(name),
	}
}

// Door is a segment on the room boundary with an opening direction.
type Door struct {
	A           orb.Point `json:"a"`
	B           orb.Point `json:"b"`
	OpensInward bool      `json:"opensInward"`
}

// Width returns the distance between the door endpoints.
func (d Door) Width() float64 {
	return math.Hypot(d.B[0]-d.A[0], d.B[1]-d.A[1])
}

// RoomPlan is the immutable input of one solve: the room boundary, the door
// and the items to place.
type RoomPlan struct {
	Name     string      `json:"name"`
	Boundary []orb.Point `json:"boundary"`
	Door     Door        `json:"door"`
	Items    []ItemSpec  `json:"items"`
}

// Validate rejects malformed plans before any solving begins.
func (p RoomPlan) Validate() error {
	if len(p.Boundary) < 3 {
		return fmt.Errorf("boundary needs at least 3 points, got %d", len(p.Boundary))
	}
	if p.Door.Width() == 0 {
		return fmt.Errorf("door endpoints coincide")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("no items to place")
	}
	for _, it := range p.Items {
		if it.Length <= 0 || it.Width <= 0 {
			return fmt.Errorf("item %q has non-positive dimensions %g x %g", it.Name, it.Length, it.Width)
		}
	}
	return nil
}

// Pose is a placement candidate: a center point and a rotation in degrees,
// normalized to [0, 360).
type Pose struct {
	Center   orb.Point `json:"center"`
	Rotation float64   `json:"rotation"`
}

// PlacedItem binds an item to a committed pose. Body is the item rectangle
// in room coordinates; Clearance is the door-swing zone for refrigerators
// and nil otherwise. Never mutated after commit.
type PlacedItem struct {
	Item      ItemSpec
	Pose      Pose
	Body      orb.Polygon
	Clearance orb.Polygon
}

// ResultEntry is the per-item outcome of a solve.
type ResultEntry struct {
	Name     string
	Placed   bool
	Center   orb.Point
	Rotation float64
	Err      string
}

// ResultSet is the ordered, immutable output of one solve: one entry per
// requested item, in placement order.
type ResultSet struct {
	Entries []ResultEntry
}

// Feasible reports whether every item was placed.
func (rs ResultSet) Feasible() bool {
	for _, e := range rs.Entries {
		if !e.Placed {
			return false
		}
	}
	return true
}

// ByName returns the entry for the named item.
func (rs ResultSet) ByName(name string) (ResultEntry, bool) {
	for _, e := range rs.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return ResultEntry{}, false
}

// PlacedCount returns how many items were placed.
func (rs ResultSet) PlacedCount() int {
	n := 0
	for _, e := range rs.Entries {
		if e.Placed {
			n++
		}
	}
	return n
}
