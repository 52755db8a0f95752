// Package solver places rectangular items inside a room polygon.
//
// Placement is greedy first-fit: refrigerators first (their swing
// clearances constrain everything placed after them), then each item is
// slid along the room walls in both axis orientations, and finally
// dropped onto a coarse interior grid when no wall position works. The
// first pose passing the validity predicate is committed and never
// revisited.
package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/piwi3910/roomfit/internal/geo"
	"github.com/piwi3910/roomfit/internal/model"
)

const (
	// Wall scan: at least this many offsets per wall/orientation, with
	// extra steps added so adjacent probes stay within stepLen units.
	wallScanMinSteps = 50
	wallScanStepLen  = 20.0

	// Distance along the wall normal used to probe which side of a wall
	// faces the room interior.
	normalProbeDist = 100.0

	// Interior grid fallback: cell spacing as a multiple of the item's
	// larger dimension, and extra margin kept from the bounding box.
	gridSpacingFactor = 1.2
	gridMargin        = 10.0
)

// FailureNoPosition is the reason recorded for items the solver could
// not place anywhere in the room.
const FailureNoPosition = "no valid position found"

// Solver places the items of one plan. It is not safe for concurrent
// use; create one Solver per plan.
type Solver struct {
	plan     model.RoomPlan
	eng      geo.Engine
	tol      Tolerances
	room     orb.Polygon
	doorZone orb.Polygon
	check    *validator
	placed   []model.PlacedItem
}

// Option customizes a Solver at construction time.
type Option func(*Solver)

// WithEngine replaces the default geometry backend.
func WithEngine(eng geo.Engine) Option {
	return func(s *Solver) { s.eng = eng }
}

// WithTolerances replaces the default validity thresholds.
func WithTolerances(tol Tolerances) Option {
	return func(s *Solver) { s.tol = tol }
}

// New validates the plan and prepares a solver for it, including the
// door clearance zone derived from the plan's door.
func New(plan model.RoomPlan, opts ...Option) (*Solver, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	s := &Solver{
		plan: plan,
		eng:  geo.NewEngine(),
		tol:  DefaultTolerances(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.room = geo.NewPolygon(plan.Boundary)
	s.doorZone = BuildDoorZone(plan.Door, s.room, s.eng)
	s.check = &validator{eng: s.eng, tol: s.tol, room: s.room, doorZone: s.doorZone}
	return s, nil
}

// DoorZone returns the clearance polygon kept free in front of the door.
func (s *Solver) DoorZone() orb.Polygon { return s.doorZone }

// Room returns the room boundary as a polygon.
func (s *Solver) Room() orb.Polygon { return s.room }

// Placed returns the items committed by the most recent Solve, with
// their footprint and clearance polygons.
func (s *Solver) Placed() []model.PlacedItem {
	out := make([]model.PlacedItem, len(s.placed))
	copy(out, s.placed)
	return out
}

// Solve places every item of the plan and returns one result entry per
// item, in the plan's item order within each pass. Refrigerators are
// processed before all other items; ties keep the plan order.
func (s *Solver) Solve() model.ResultSet {
	s.placed = s.placed[:0]

	items := make([]model.ItemSpec, len(s.plan.Items))
	copy(items, s.plan.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Kind == model.ItemRefrigerator && items[j].Kind != model.ItemRefrigerator
	})

	walls := s.walls()
	entries := make([]model.ResultEntry, 0, len(items))
	for _, item := range items {
		if entry, ok := s.placeAlongWalls(item, walls); ok {
			entries = append(entries, entry)
			continue
		}
		if entry, ok := s.placeOnGrid(item); ok {
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, model.ResultEntry{Name: item.Name, Err: FailureNoPosition})
	}
	return model.ResultSet{Entries: entries}
}

type wall struct {
	a, b orb.Point
}

func (s *Solver) walls() []wall {
	ring := s.room[0]
	out := make([]wall, 0, len(ring)-1)
	for i := 0; i+1 < len(ring); i++ {
		out = append(out, wall{a: ring[i], b: ring[i+1]})
	}
	return out
}

// placeAlongWalls slides the item along each wall, flush against it, in
// wall-parallel and wall-perpendicular orientation, committing the first
// valid pose.
func (s *Solver) placeAlongWalls(item model.ItemSpec, walls []wall) (model.ResultEntry, bool) {
	for _, w := range walls {
		dx := w.b[0] - w.a[0]
		dy := w.b[1] - w.a[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length
		wallAngle := math.Atan2(dy, dx) * 180 / math.Pi

		// Inward normal: probe a point off the wall midpoint and flip
		// if it lands outside the room.
		nx, ny := -uy, ux
		midX := (w.a[0] + w.b[0]) / 2
		midY := (w.a[1] + w.b[1]) / 2
		probe := orb.Point{midX + nx*normalProbeDist, midY + ny*normalProbeDist}
		if !geo.ContainsPoint(s.room, probe) {
			nx, ny = -nx, -ny
		}

		for _, orient := range []float64{0, 90} {
			angle := wallAngle + orient

			// Footprint extents in the wall frame, from a rectangle
			// rotated to the candidate angle around the origin.
			ring := geo.Rectangle(orb.Point{0, 0}, item.Length, item.Width, angle)[0]
			minNorm := math.Inf(1)
			minAlong := math.Inf(1)
			maxAlong := math.Inf(-1)
			for i := 0; i+1 < len(ring); i++ {
				n := ring[i][0]*nx + ring[i][1]*ny
				a := ring[i][0]*ux + ring[i][1]*uy
				minNorm = math.Min(minNorm, n)
				minAlong = math.Min(minAlong, a)
				maxAlong = math.Max(maxAlong, a)
			}
			alongLen := maxAlong - minAlong
			if alongLen > length {
				continue
			}
			// Offset pushing the footprint flush against the wall.
			inset := -minNorm

			maxOffset := length - alongLen
			steps := int(maxOffset / wallScanStepLen)
			if steps < wallScanMinSteps {
				steps = wallScanMinSteps
			}
			for step := 0; step <= steps; step++ {
				along := maxOffset * float64(step) / float64(steps)
				t := (along + alongLen/2) / length
				baseX := w.a[0] + (w.b[0]-w.a[0])*t
				baseY := w.a[1] + (w.b[1]-w.a[1])*t
				center := orb.Point{baseX + nx*inset, baseY + ny*inset}
				if entry, ok := s.tryPose(item, center, angle); ok {
					return entry, true
				}
			}
		}
	}
	return model.ResultEntry{}, false
}

// placeOnGrid scans a coarse grid over the room's bounding box, trying
// the four cardinal rotations at each interior point.
func (s *Solver) placeOnGrid(item model.ItemSpec) (model.ResultEntry, bool) {
	bound := geo.Bound(s.room)
	maxDim := math.Max(item.Length, item.Width)
	spacing := gridSpacingFactor * maxDim
	margin := maxDim/2 + gridMargin

	xs := gridAxis(bound.Min[0], bound.Max[0], margin, spacing)
	ys := gridAxis(bound.Min[1], bound.Max[1], margin, spacing)

	for _, y := range ys {
		for _, x := range xs {
			center := orb.Point{x, y}
			if !geo.ContainsPoint(s.room, center) {
				continue
			}
			for _, rot := range []float64{0, 90, 180, 270} {
				if entry, ok := s.tryPose(item, center, rot); ok {
					return entry, true
				}
			}
		}
	}
	return model.ResultEntry{}, false
}

// gridAxis enumerates coordinates from min+margin to max-margin at the
// given spacing; a span too narrow for even one step yields its midpoint.
func gridAxis(min, max, margin, spacing float64) []float64 {
	var out []float64
	for v := min + margin; v < max-margin; v += spacing {
		out = append(out, v)
	}
	if len(out) == 0 {
		out = append(out, (min+max)/2)
	}
	return out
}

// tryPose builds the footprint (and clearance for refrigerators) at the
// given pose and commits it when the validity predicate accepts it.
func (s *Solver) tryPose(item model.ItemSpec, center orb.Point, angle float64) (model.ResultEntry, bool) {
	body := geo.Rectangle(center, item.Length, item.Width, angle)
	var clearance orb.Polygon
	if item.Kind == model.ItemRefrigerator {
		clearance = FridgeClearance(center, item.Length, item.Width, angle)
	}
	if !s.check.valid(body, clearance, s.placed) {
		return model.ResultEntry{}, false
	}
	rotation := normalizeDeg(angle)
	s.placed = append(s.placed, model.PlacedItem{
		Item:      item,
		Pose:      model.Pose{Center: center, Rotation: rotation},
		Body:      body,
		Clearance: clearance,
	})
	return model.ResultEntry{
		Name:     item.Name,
		Placed:   true,
		Center:   center,
		Rotation: rotation,
	}, true
}

func normalizeDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}
