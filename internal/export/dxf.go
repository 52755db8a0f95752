package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/roomfit/internal/geo"
)

// DXF layer names for the exported layout.
const (
	layerRoom      = "ROOM"
	layerDoor      = "DOOR"
	layerDoorZone  = "DOOR_ZONE"
	layerItems     = "ITEMS"
	layerClearance = "CLEARANCE"
)

// ExportDXF writes the solved layout as a DXF drawing with one layer per
// concern, so CAD users can toggle clearances and zones independently.
func ExportDXF(path string, layout Layout) error {
	if len(layout.Plan.Boundary) < 3 {
		return fmt.Errorf("no room boundary to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerRoom, color.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerRoom, err)
	}
	room := geo.NewPolygon(layout.Plan.Boundary)
	if err := drawPolygon(d, room); err != nil {
		return err
	}

	if _, err := d.AddLayer(layerDoor, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerDoor, err)
	}
	door := layout.Plan.Door
	if _, err := d.Line(door.A[0], door.A[1], 0, door.B[0], door.B[1], 0); err != nil {
		return fmt.Errorf("failed to draw door: %w", err)
	}

	if len(layout.DoorZone) > 0 {
		if _, err := d.AddLayer(layerDoorZone, color.Magenta, table.LT_HIDDEN, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layerDoorZone, err)
		}
		if err := drawPolygon(d, layout.DoorZone); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerClearance, color.Cyan, table.LT_HIDDEN, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerClearance, err)
	}
	for _, p := range layout.Placed {
		if p.Clearance == nil {
			continue
		}
		if err := drawPolygon(d, p.Clearance); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerItems, color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerItems, err)
	}
	for _, p := range layout.Placed {
		if err := drawPolygon(d, p.Body); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// drawPolygon emits the outer ring of a polygon as line segments.
func drawPolygon(d *drawing.Drawing, p orb.Polygon) error {
	if len(p) == 0 {
		return nil
	}
	ring := p[0]
	for i := 0; i+1 < len(ring); i++ {
		a, b := ring[i], ring[i+1]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw segment: %w", err)
		}
	}
	return nil
}
