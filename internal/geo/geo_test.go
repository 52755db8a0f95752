package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolygonClosesRing(t *testing.T) {
	p := NewPolygon([]orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	require.Len(t, p, 1)
	assert.Equal(t, p[0][0], p[0][len(p[0])-1])

	// An already-closed input is not double closed.
	q := NewPolygon([]orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	assert.Len(t, q[0], 5)
}

func TestRectangleAreaAndRotation(t *testing.T) {
	r := Rectangle(orb.Point{50, 50}, 30, 20, 0)
	assert.InDelta(t, 600, Area(r), 1e-9)

	b := Bound(r)
	assert.InDelta(t, 35, b.Min[0], 1e-9)
	assert.InDelta(t, 65, b.Max[0], 1e-9)
	assert.InDelta(t, 40, b.Min[1], 1e-9)
	assert.InDelta(t, 60, b.Max[1], 1e-9)

	// 90 degree rotation swaps the extents; area is unchanged.
	r90 := Rectangle(orb.Point{50, 50}, 30, 20, 90)
	assert.InDelta(t, 600, Area(r90), 1e-9)
	b90 := Bound(r90)
	assert.InDelta(t, 40, b90.Min[0], 1e-9)
	assert.InDelta(t, 35, b90.Min[1], 1e-9)
}

func TestRotateAboutOrigin(t *testing.T) {
	p := Box(0, 0, 10, 10)
	got := Rotate(p, 180, orb.Point{0, 0})
	b := Bound(got)
	assert.InDelta(t, -10, b.Min[0], 1e-9)
	assert.InDelta(t, 0, b.Max[0], 1e-9)
	assert.InDelta(t, -10, b.Min[1], 1e-9)
}

func TestSegmentBufferCapsule(t *testing.T) {
	zone := SegmentBuffer(orb.Point{0, 0}, orb.Point{100, 0}, 10)

	// Area approximates rectangle plus full circle from below.
	want := 100*20 + math.Pi*100
	got := Area(zone)
	assert.Less(t, got, want)
	assert.Greater(t, got, want*0.98)

	assert.True(t, ContainsPoint(zone, orb.Point{50, 9}))
	assert.True(t, ContainsPoint(zone, orb.Point{-9, 0}))
	assert.False(t, ContainsPoint(zone, orb.Point{50, 11}))
}

func TestSegmentBufferDegenerateSegment(t *testing.T) {
	circle := SegmentBuffer(orb.Point{5, 5}, orb.Point{5, 5}, 4)
	got := Area(circle)
	want := math.Pi * 16
	assert.Less(t, got, want)
	assert.Greater(t, got, want*0.98)
}

func TestEnginePredicates(t *testing.T) {
	eng := NewEngine()
	room := Box(0, 0, 100, 100)
	inner := Box(10, 10, 30, 30)
	crossing := Box(90, 90, 120, 120)

	covered, err := eng.Covers(room, inner)
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = eng.Covers(room, crossing)
	require.NoError(t, err)
	assert.False(t, covered)

	over, err := eng.Overlaps(room, crossing)
	require.NoError(t, err)
	assert.True(t, over)

	// Containment is not an overlap in DE-9IM terms.
	over, err = eng.Overlaps(room, inner)
	require.NoError(t, err)
	assert.False(t, over)

	hit, err := eng.Intersects(inner, crossing)
	require.NoError(t, err)
	assert.False(t, hit)

	area, err := eng.IntersectionArea(room, crossing)
	require.NoError(t, err)
	assert.InDelta(t, 100, area, 1e-6)
}

func TestEngineSharedEdgeIntersection(t *testing.T) {
	eng := NewEngine()
	left := Box(0, 0, 50, 100)
	right := Box(50, 0, 100, 100)

	area, err := eng.IntersectionArea(left, right)
	require.NoError(t, err)
	assert.InDelta(t, 0, area, 1e-9)

	over, err := eng.Overlaps(left, right)
	require.NoError(t, err)
	assert.False(t, over)
}
