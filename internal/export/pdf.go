// Package export renders solved room layouts to PDF, DXF and Excel files,
// and prints QR-coded item labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/paulmach/orb"

	"github.com/piwi3910/roomfit/internal/geo"
	"github.com/piwi3910/roomfit/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// Layout bundles everything needed to render a solved plan.
type Layout struct {
	Plan     model.RoomPlan
	Result   model.ResultSet
	Placed   []model.PlacedItem
	DoorZone orb.Polygon
}

// ExportPDF generates a PDF document with the floor plan on the first page
// and a placement summary table on the second.
func ExportPDF(path string, layout Layout) error {
	if len(layout.Plan.Boundary) < 3 {
		return fmt.Errorf("no room boundary to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderFloorPlanPage(pdf, layout)

	pdf.AddPage()
	renderSummaryPage(pdf, layout)

	return pdf.OutputFileAndClose(path)
}

// planTransform maps room coordinates (y up) to page coordinates (y down).
type planTransform struct {
	scale            float64
	minX, maxY       float64
	offsetX, offsetY float64
}

func newPlanTransform(bound orb.Bound) planTransform {
	roomW := bound.Max[0] - bound.Min[0]
	roomH := bound.Max[1] - bound.Min[1]
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/roomW, drawHeight/roomH)
	return planTransform{
		scale:   scale,
		minX:    bound.Min[0],
		maxY:    bound.Max[1],
		offsetX: marginLeft + (drawWidth-roomW*scale)/2,
		offsetY: drawAreaTop,
	}
}

func (t planTransform) point(p orb.Point) (float64, float64) {
	return t.offsetX + (p[0]-t.minX)*t.scale, t.offsetY + (t.maxY-p[1])*t.scale
}

func (t planTransform) points(p orb.Polygon) []fpdf.PointType {
	if len(p) == 0 {
		return nil
	}
	ring := p[0]
	out := make([]fpdf.PointType, len(ring))
	for i, pt := range ring {
		x, y := t.point(pt)
		out[i] = fpdf.PointType{X: x, Y: y}
	}
	return out
}

// renderFloorPlanPage draws the room, the door zone and every placed item.
func renderFloorPlanPage(pdf *fpdf.Fpdf, layout Layout) {
	plan := layout.Plan
	room := geo.NewPolygon(plan.Boundary)
	bound := geo.Bound(room)
	tf := newPlanTransform(bound)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Room Plan: %s (%.0f x %.0f)", plan.Name,
		bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items placed: %d / %d | Room area: %.0f | Door width: %.0f (%s)",
		layout.Result.PlacedCount(), len(layout.Result.Entries),
		geo.Area(room), plan.Door.Width(), doorSwingLabel(plan.Door))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Room floor
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Polygon(tf.points(room), "FD")

	// Door clearance zone with hatching
	if len(layout.DoorZone) > 0 {
		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(tf.points(layout.DoorZone), "FD")
		zb := geo.Bound(layout.DoorZone)
		zx, zy := tf.point(orb.Point{zb.Min[0], zb.Max[1]})
		drawHatchPattern(pdf, zx, zy, (zb.Max[0]-zb.Min[0])*tf.scale, (zb.Max[1]-zb.Min[1])*tf.scale)
	}

	// Door line
	ax, ay := tf.point(plan.Door.A)
	bx, by := tf.point(plan.Door.B)
	pdf.SetDrawColor(180, 0, 0)
	pdf.SetLineWidth(1.2)
	pdf.Line(ax, ay, bx, by)

	// Refrigerator clearances first, so bodies draw on top
	for _, p := range layout.Placed {
		if p.Clearance == nil {
			continue
		}
		pdf.SetFillColor(220, 235, 250)
		pdf.SetDrawColor(100, 140, 180)
		pdf.SetLineWidth(0.2)
		pdf.Polygon(tf.points(p.Clearance), "FD")
	}

	// Item bodies
	for i, p := range layout.Placed {
		col := itemColors[i%len(itemColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(tf.points(p.Body), "FD")

		// Item label at the center, if it fits
		w := p.Item.Length * tf.scale
		h := p.Item.Width * tf.scale
		if w > 15 && h > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			label := p.Item.Name
			labelW := pdf.GetStringWidth(label)
			cx, cy := tf.point(p.Pose.Center)
			if labelW < w-2 {
				pdf.SetXY(cx-labelW/2, cy-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	// Items legend at bottom of page
	roomH := (bound.Max[1] - bound.Min[1]) * tf.scale
	drawItemsLegend(pdf, layout, tf.offsetY+roomH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark keep-clear zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		// Line from bottom-left to top-right diagonal
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawItemsLegend renders a compact legend of placed items at the bottom of the page.
func drawItemsLegend(pdf *fpdf.Fpdf, layout Layout, startY float64) {
	if len(layout.Placed) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range layout.Placed {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Item.Name, p.Item.Length, p.Item.Width)
		if p.Item.Kind == model.ItemRefrigerator {
			label += " F"
		}
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the placement table and failure list.
func renderSummaryPage(pdf *fpdf.Fpdf, layout Layout) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Items Requested", fmt.Sprintf("%d", len(layout.Result.Entries))},
		{"Items Placed", fmt.Sprintf("%d", layout.Result.PlacedCount())},
		{"Fully Feasible", fmt.Sprintf("%t", layout.Result.Feasible())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-item table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Items", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 40, 30, 45, 30, 60}
	headers := []string{"Name", "Dimensions", "Kind", "Center", "Rotation", "Status"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, entry := range layout.Result.Entries {
		item := findItem(layout.Plan.Items, entry.Name)

		center := "-"
		rotation := "-"
		status := entry.Err
		if entry.Placed {
			center = fmt.Sprintf("(%.1f, %.1f)", entry.Center[0], entry.Center[1])
			rotation = fmt.Sprintf("%.0f°", entry.Rotation)
			status = "placed"
		}
		rowData := []string{
			entry.Name,
			fmt.Sprintf("%.0f x %.0f", item.Length, item.Width),
			item.Kind.String(),
			center,
			rotation,
			status,
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomFit - Room Layout Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func doorSwingLabel(d model.Door) string {
	if d.OpensInward {
		return "opens inward"
	}
	return "opens outward"
}

func findItem(items []model.ItemSpec, name string) model.ItemSpec {
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	return model.ItemSpec{}
}
