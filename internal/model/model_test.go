package model

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemSpecNormalizesDimensions(t *testing.T) {
	item := NewItemSpec("shelf", 40, 120)
	assert.Equal(t, 120.0, item.Length)
	assert.Equal(t, 40.0, item.Width)
	assert.Len(t, item.ID, 8)
	assert.Equal(t, ItemStandard, item.Kind)
}

func TestKindFromName(t *testing.T) {
	assert.Equal(t, ItemRefrigerator, KindFromName("fridge"))
	assert.Equal(t, ItemRefrigerator, KindFromName("big fridge 2"))
	assert.Equal(t, ItemStandard, KindFromName("shelf"))
	// Matching is case sensitive.
	assert.Equal(t, ItemStandard, KindFromName("Fridge"))
}

func TestItemKindString(t *testing.T) {
	assert.Equal(t, "Refrigerator", ItemRefrigerator.String())
	assert.Equal(t, "Standard", ItemStandard.String())
}

func TestDoorWidth(t *testing.T) {
	d := Door{A: orb.Point{160, 0}, B: orb.Point{240, 0}}
	assert.InDelta(t, 80, d.Width(), 1e-9)

	diagonal := Door{A: orb.Point{0, 0}, B: orb.Point{3, 4}}
	assert.InDelta(t, 5, diagonal.Width(), 1e-9)
}

func validPlan() RoomPlan {
	return RoomPlan{
		Name:     "test",
		Boundary: []orb.Point{{0, 0}, {400, 0}, {400, 300}, {0, 300}},
		Door:     Door{A: orb.Point{160, 0}, B: orb.Point{240, 0}},
		Items:    []ItemSpec{NewItemSpec("shelf", 120, 40)},
	}
}

func TestRoomPlanValidate(t *testing.T) {
	assert.NoError(t, validPlan().Validate())

	p := validPlan()
	p.Boundary = p.Boundary[:2]
	assert.ErrorContains(t, p.Validate(), "boundary")

	p = validPlan()
	p.Door.B = p.Door.A
	assert.ErrorContains(t, p.Validate(), "door")

	p = validPlan()
	p.Items = nil
	assert.ErrorContains(t, p.Validate(), "items")

	p = validPlan()
	p.Items[0].Width = 0
	assert.ErrorContains(t, p.Validate(), "dimensions")
}

func TestResultSetAccessors(t *testing.T) {
	rs := ResultSet{Entries: []ResultEntry{
		{Name: "fridge", Placed: true},
		{Name: "shelf", Placed: false, Err: "no valid position found"},
	}}

	assert.False(t, rs.Feasible())
	assert.Equal(t, 1, rs.PlacedCount())

	entry, ok := rs.ByName("shelf")
	require.True(t, ok)
	assert.False(t, entry.Placed)

	_, ok = rs.ByName("desk")
	assert.False(t, ok)

	all := ResultSet{Entries: []ResultEntry{{Name: "fridge", Placed: true}}}
	assert.True(t, all.Feasible())
}

func TestAppConfigAddRecentPlan(t *testing.T) {
	c := DefaultAppConfig()
	c.AddRecentPlan("a.json")
	c.AddRecentPlan("b.json")
	c.AddRecentPlan("a.json")
	assert.Equal(t, []string{"a.json", "b.json"}, c.RecentPlans)

	for i := 0; i < 15; i++ {
		c.AddRecentPlan(string(rune('a'+i)) + "-plan.json")
	}
	assert.Len(t, c.RecentPlans, 10)
}

func TestPlanTemplateInstantiate(t *testing.T) {
	tpl := NewPlanTemplate("kitchen basics", "starter set", []ItemSpec{
		NewItemSpec("fridge", 90, 70),
		NewItemSpec("shelf", 120, 40),
	})
	require.Len(t, tpl.Items, 2)
	assert.NotEmpty(t, tpl.ID)
	assert.NotEmpty(t, tpl.CreatedAt)

	p := tpl.Instantiate(RoomPlan{
		Boundary: []orb.Point{{0, 0}, {400, 0}, {400, 300}, {0, 300}},
		Door:     Door{A: orb.Point{160, 0}, B: orb.Point{240, 0}},
	})
	assert.Equal(t, "kitchen basics", p.Name)
	require.Len(t, p.Items, 2)
	// Fresh IDs, same specs.
	assert.NotEqual(t, tpl.Items[0].ID, p.Items[0].ID)
	assert.Equal(t, tpl.Items[0].Name, p.Items[0].Name)
	assert.Equal(t, ItemRefrigerator, p.Items[0].Kind)
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	a := NewPlanTemplate("a", "", nil)
	b := NewPlanTemplate("b", "", nil)
	store.Add(a)
	store.Add(b)

	assert.Equal(t, []string{"a", "b"}, store.Names())
	require.NotNil(t, store.FindByName("b"))
	assert.Nil(t, store.FindByName("c"))

	assert.True(t, store.Remove(a.ID))
	assert.False(t, store.Remove(a.ID))
	assert.Equal(t, []string{"b"}, store.Names())
}

func TestTemplateStoreUpsert(t *testing.T) {
	store := NewTemplateStore()
	original := store.Upsert("kitchen", "first cut", []ItemSpec{
		NewItemSpec("fridge", 90, 70),
	})
	require.Equal(t, []string{"kitchen"}, store.Names())

	updated := store.Upsert("kitchen", "", []ItemSpec{
		NewItemSpec("fridge", 90, 70),
		NewItemSpec("shelf", 120, 40),
	})
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "first cut", updated.Description)
	assert.Len(t, store.Templates, 1)
	assert.Len(t, store.Templates[0].Items, 2)

	store.Upsert("laundry", "", nil)
	assert.Equal(t, []string{"kitchen", "laundry"}, store.Names())
}
