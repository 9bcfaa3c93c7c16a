// DepotPlan — bus depot layout planner
//
// Packs parking areas (drive-through lanes, direct rows, double rows) into
// a depot plot, keeping maneuvering buffers and boundary clearances free,
// then reports feasibility, vehicle count and utilization.
//
// Build:
//   go build -o depotplan ./cmd/depotplan
//
// Usage:
//   depotplan -scenario depot.json -pdf layout.pdf
//   depotplan -probe                 (capacity probe on the built-in demo)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/engine"
	"github.com/piwi3910/depotplan/internal/export"
	"github.com/piwi3910/depotplan/internal/model"
	"github.com/piwi3910/depotplan/internal/project"
)

var hundred = decimal.NewFromInt(100)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "scenario JSON file (default: built-in demo scenario)")
		pdfPath      = flag.String("pdf", "", "write the layout as a PDF to this path")
		dxfPath      = flag.String("dxf", "", "write the layout as a DXF drawing to this path")
		xlsxPath     = flag.String("xlsx", "", "write the layout report workbook to this path")
		labelsPath   = flag.String("labels", "", "write QR-coded area placards to this path")
		probe        = flag.Bool("probe", false, "probe how many areas of each kind fit on the plot")
	)
	flag.Parse()

	if err := run(*scenarioPath, *pdfPath, *dxfPath, *xlsxPath, *labelsPath, *probe); err != nil {
		fmt.Fprintln(os.Stderr, "depotplan:", err)
		os.Exit(1)
	}
}

func run(scenarioPath, pdfPath, dxfPath, xlsxPath, labelsPath string, probe bool) error {
	scenario := project.DemoScenario()
	if scenarioPath != "" {
		loaded, err := project.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		scenario = loaded
	}
	if err := scenario.Validate(); err != nil {
		return err
	}

	custom, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		return fmt.Errorf("cannot load custom profiles: %w", err)
	}
	profile, err := scenario.ResolveProfile(custom)
	if err != nil {
		return err
	}

	areas, err := model.BuildAreas(scenario.Areas, profile)
	if err != nil {
		return err
	}

	bin := engine.NewBinWithDistances(scenario.Plot.A, scenario.Plot.B, scenario.Plot.Clearance)
	bin.RecordHistory = scenario.Plot.RecordHistory
	for _, ar := range areas {
		bin.AddItem(ar)
	}
	if err := bin.Pack(); err != nil {
		return err
	}

	printSummary(os.Stdout, scenario, bin)

	if probe {
		if err := printProbe(os.Stdout, scenario, profile); err != nil {
			return err
		}
	}

	plan := export.NewPlan(bin, scenario.Name)
	plan.SetClearance(scenario.Plot.Clearance)

	exports := []struct {
		path  string
		write func(string, export.Plan) error
	}{
		{pdfPath, export.ExportPDF},
		{dxfPath, export.ExportDXF},
		{xlsxPath, export.ExportXLSX},
		{labelsPath, export.ExportLabels},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, plan); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", e.path)
	}

	return nil
}

func printSummary(w *os.File, scenario project.Scenario, bin *engine.BinWithDistances) {
	a, b := bin.Dims()
	fmt.Fprintf(w, "%s: plot %s x %s m, %d areas requested\n",
		scenario.Name, a, b, len(scenario.Areas))

	if bin.Feasible() {
		fmt.Fprintf(w, "Layout feasible: %d areas placed, %d vehicle slots, utilization %s%% (slots %s%%)\n",
			len(bin.Packed()), bin.CountInner(),
			bin.UtilRate().Mul(hundred).StringFixed(1),
			bin.InnerUtilRate().Mul(hundred).StringFixed(1))
		for _, ar := range bin.Packed() {
			outer := ar.Outer()
			fmt.Fprintf(w, "  %-20s %-15s %3d slots at (%s, %s)\n",
				ar.Label, ar.Kind, ar.Count, outer.X, outer.Y)
		}
	} else {
		fmt.Fprintf(w, "Layout infeasible: %d of %d areas placed\n",
			len(bin.Packed()), bin.ItemCount())
	}
}

// printProbe reports, per arrangement kind, how many areas of a reference
// size fit alone on the empty plot.
func printProbe(w *os.File, scenario project.Scenario, profile model.VehicleProfile) error {
	probes := []struct {
		name  string
		build func() (*model.Area, error)
	}{
		{"Line (6 slots)", func() (*model.Area, error) {
			return model.NewLineArea(profile, "probe", 6)
		}},
		{"DirectRow (6 slots)", func() (*model.Area, error) {
			return model.NewDirectRowArea(profile, "probe", 6, profile.DirectAngle)
		}},
		{"DirectDoubleRow (12 slots)", func() (*model.Area, error) {
			return model.NewDirectDoubleRowArea(profile, "probe", 12)
		}},
	}

	fmt.Fprintln(w, "Capacity probe (empty plot):")
	for _, p := range probes {
		bin := engine.NewBinWithDistances(scenario.Plot.A, scenario.Plot.B, scenario.Plot.Clearance)
		n, err := engine.MaxCount(bin, p.build)
		if err != nil {
			return fmt.Errorf("probe %s: %w", p.name, err)
		}
		fmt.Fprintf(w, "  %-28s %d areas\n", p.name, n)
	}
	return nil
}
