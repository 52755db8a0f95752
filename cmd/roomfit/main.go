// RoomFit — room layout placement solver
//
// Loads a room plan document, places every item with the greedy first-fit
// solver and writes the result document next to the plan. Optional flags
// render the solved layout to PDF, DXF or Excel, or print QR item labels.
//
// Build:
//   go build -o roomfit ./cmd/roomfit
//
// Usage:
//   roomfit [flags] plan.json

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/roomfit/internal/export"
	"github.com/piwi3910/roomfit/internal/importer"
	"github.com/piwi3910/roomfit/internal/plan"
	"github.com/piwi3910/roomfit/internal/solver"
)

func main() {
	var (
		outDir       = flag.String("out", "", "output directory (default: alongside the plan, or the configured output dir)")
		itemsFile    = flag.String("items", "", "CSV or XLSX file with extra items to merge into the plan")
		dxfRoom      = flag.String("boundary", "", "DXF floor drawing to use as the room boundary, replacing the plan's")
		templateName = flag.String("template", "", "replace the plan's items with the named template from ~/.roomfit/templates.json")
		saveTemplate = flag.String("save-template", "", "save the plan's items (after any -items merge) as a named template")
		backupPath   = flag.String("backup", "", "export config and templates to this file and exit; no plan needed")
		restorePath  = flag.String("restore", "", "import config and templates from this backup file and exit; no plan needed")
		pdfOut       = flag.Bool("pdf", false, "render the solved layout as a PDF floor plan")
		dxfOut       = flag.Bool("dxf", false, "write the solved layout as a DXF drawing")
		xlsxOut      = flag.Bool("xlsx", false, "write the placement report as an Excel workbook")
		labelsOut    = flag.Bool("labels", false, "print QR-coded item labels as a PDF")
	)
	flag.Parse()

	if *backupPath != "" {
		runBackup(*backupPath)
		return
	}
	if *restorePath != "" {
		runRestore(*restorePath)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: roomfit [flags] plan.json")
		flag.PrintDefaults()
		os.Exit(2)
	}
	planPath := flag.Arg(0)

	config, err := plan.LoadAppConfig(plan.DefaultConfigPath())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	roomPlan, err := plan.Load(planPath)
	if err != nil {
		log.Fatalf("failed to load plan: %v", err)
	}

	if *templateName != "" {
		store, err := plan.LoadDefaultTemplates()
		if err != nil {
			log.Fatalf("failed to load templates: %v", err)
		}
		roomPlan, err = plan.ApplyTemplate(store, *templateName, roomPlan)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("items replaced from template %q (%d items)", *templateName, len(roomPlan.Items))
	}

	if *dxfRoom != "" {
		boundary, err := importer.ImportBoundaryDXF(*dxfRoom)
		if err != nil {
			log.Fatalf("failed to import boundary: %v", err)
		}
		roomPlan.Boundary = boundary
		log.Printf("room boundary replaced from %s (%d points)", *dxfRoom, len(boundary))
	}

	if *itemsFile != "" {
		result := importItems(*itemsFile)
		for _, w := range result.Warnings {
			log.Printf("import warning: %s", w)
		}
		for _, e := range result.Errors {
			log.Printf("import error: %s", e)
		}
		if len(result.Items) == 0 && len(result.Errors) > 0 {
			log.Fatalf("no items imported from %s", *itemsFile)
		}
		roomPlan.Items = append(roomPlan.Items, result.Items...)
		log.Printf("merged %d items from %s", len(result.Items), *itemsFile)
	}

	if *saveTemplate != "" {
		store, err := plan.LoadDefaultTemplates()
		if err != nil {
			log.Fatalf("failed to load templates: %v", err)
		}
		store.Upsert(*saveTemplate, "", roomPlan.Items)
		if err := plan.SaveDefaultTemplates(store); err != nil {
			log.Fatalf("failed to save templates: %v", err)
		}
		log.Printf("template %q saved (%d items)", *saveTemplate, len(roomPlan.Items))
	}

	s, err := solver.New(roomPlan, solver.WithTolerances(solver.Tolerances{
		CoverageRatio:   config.DefaultCoverageRatio,
		DoorOverlapArea: config.DefaultDoorOverlapArea,
		CollisionRatio:  config.DefaultCollisionRatio,
	}))
	if err != nil {
		log.Fatalf("invalid plan: %v", err)
	}

	result := s.Solve()
	for _, entry := range result.Entries {
		if entry.Placed {
			log.Printf("placed  %-20s center=(%.1f, %.1f) rotation=%.0f",
				entry.Name, entry.Center[0], entry.Center[1], entry.Rotation)
		} else {
			log.Printf("FAILED  %-20s %s", entry.Name, entry.Err)
		}
	}
	log.Printf("placed %d of %d items", result.PlacedCount(), len(result.Entries))

	resultPath := outputPath(planPath, *outDir, config.OutputDir, "_result.json")
	if err := plan.SaveResult(resultPath, result); err != nil {
		log.Fatalf("failed to write result: %v", err)
	}
	log.Printf("result written to %s", resultPath)

	layout := export.Layout{
		Plan:     roomPlan,
		Result:   result,
		Placed:   s.Placed(),
		DoorZone: s.DoorZone(),
	}
	if *pdfOut {
		runExport("PDF", outputPath(planPath, *outDir, config.OutputDir, ".pdf"), layout, export.ExportPDF)
	}
	if *dxfOut {
		runExport("DXF", outputPath(planPath, *outDir, config.OutputDir, ".dxf"), layout, export.ExportDXF)
	}
	if *xlsxOut {
		runExport("XLSX", outputPath(planPath, *outDir, config.OutputDir, ".xlsx"), layout, export.ExportExcel)
	}
	if *labelsOut {
		path := outputPath(planPath, *outDir, config.OutputDir, "_labels.pdf")
		if err := export.ExportLabels(path, roomPlan, s.Placed()); err != nil {
			log.Fatalf("labels export failed: %v", err)
		}
		log.Printf("labels written to %s", path)
	}

	config.AddRecentPlan(planPath)
	if err := plan.SaveAppConfig(plan.DefaultConfigPath(), config); err != nil {
		log.Printf("warning: failed to save config: %v", err)
	}

	if !result.Feasible() {
		os.Exit(1)
	}
}

func runBackup(path string) {
	config, err := plan.LoadAppConfig(plan.DefaultConfigPath())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	templates, err := plan.LoadDefaultTemplates()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}
	if err := plan.ExportAllData(path, config, templates); err != nil {
		log.Fatalf("backup failed: %v", err)
	}
	log.Printf("backup written to %s (%d templates)", path, len(templates.Templates))
}

func runRestore(path string) {
	templatesPath, err := plan.DefaultTemplatePath()
	if err != nil {
		log.Fatalf("failed to resolve templates path: %v", err)
	}
	backup, err := plan.RestoreAllData(path, plan.DefaultConfigPath(), templatesPath)
	if err != nil {
		log.Fatalf("restore failed: %v", err)
	}
	log.Printf("restored config and %d templates from %s", len(backup.Templates.Templates), path)
}

func importItems(path string) importer.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return importer.ImportExcel(path)
	default:
		return importer.ImportCSV(path)
	}
}

// outputPath derives an output file path from the plan path: the plan's
// base name plus suffix, placed in the first non-empty directory of
// flagDir, configDir, or the plan's own directory.
func outputPath(planPath, flagDir, configDir, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	dir := filepath.Dir(planPath)
	if configDir != "" {
		dir = configDir
	}
	if flagDir != "" {
		dir = flagDir
	}
	return filepath.Join(dir, base+suffix)
}

func runExport(kind, path string, layout export.Layout, fn func(string, export.Layout) error) {
	if err := fn(path, layout); err != nil {
		log.Fatalf("%s export failed: %v", kind, err)
	}
	log.Printf("%s written to %s", kind, path)
}
