package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/roomfit/internal/geo"
	"github.com/piwi3910/roomfit/internal/model"
)

func testLayout() Layout {
	fridge := model.NewItemSpec("fridge", 90, 70)
	shelf := model.NewItemSpec("shelf", 120, 40)

	plan := model.RoomPlan{
		Name:     "kitchen",
		Boundary: []orb.Point{{0, 0}, {400, 0}, {400, 300}, {0, 300}},
		Door:     model.Door{A: orb.Point{160, 0}, B: orb.Point{240, 0}, OpensInward: true},
		Items:    []model.ItemSpec{fridge, shelf},
	}

	// Fridge against the top wall, rotated so its doors swing into the room.
	fridgePose := model.Pose{Center: orb.Point{45, 265}, Rotation: 180}
	shelfPose := model.Pose{Center: orb.Point{300, 20}, Rotation: 0}

	return Layout{
		Plan: plan,
		Result: model.ResultSet{Entries: []model.ResultEntry{
			{Name: "fridge", Placed: true, Center: fridgePose.Center, Rotation: 180},
			{Name: "shelf", Placed: true, Center: shelfPose.Center, Rotation: 0},
		}},
		Placed: []model.PlacedItem{
			{
				Item:      fridge,
				Pose:      fridgePose,
				Body:      geo.Rectangle(fridgePose.Center, fridge.Length, fridge.Width, 180),
				Clearance: geo.Box(0, 185, 90, 230),
			},
			{
				Item: shelf,
				Pose: shelfPose,
				Body: geo.Rectangle(shelfPose.Center, shelf.Length, shelf.Width, 0),
			},
		},
		DoorZone: geo.Box(160, 0, 240, 80),
	}
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, testLayout()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportPDFNoBoundary(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "layout.pdf"), Layout{})
	assert.Error(t, err)
}

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, ExportDXF(path, testLayout()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, layerRoom)
	assert.Contains(t, content, layerDoorZone)
	assert.Contains(t, content, layerItems)
	assert.Contains(t, content, layerClearance)
}

func TestExportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	require.NoError(t, ExportExcel(path, testLayout()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Placements", "A2")
	require.NoError(t, err)
	assert.Equal(t, "fridge", name)

	kind, err := f.GetCellValue("Placements", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Refrigerator", kind)
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	layout := testLayout()
	require.NoError(t, ExportLabels(path, layout.Plan, layout.Placed))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(1000))
}

func TestExportLabelsNoPlacements(t *testing.T) {
	layout := testLayout()
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), layout.Plan, nil)
	assert.Error(t, err)
}

func TestCollectLabelInfos(t *testing.T) {
	layout := testLayout()
	labels := CollectLabelInfos(layout.Plan, layout.Placed)
	require.Len(t, labels, 2)
	assert.Equal(t, "fridge", labels[0].ItemName)
	assert.Equal(t, "Refrigerator", labels[0].Kind)
	assert.Equal(t, "kitchen", labels[0].Room)
	assert.Equal(t, 45.0, labels[0].X)
}
