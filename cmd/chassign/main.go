// Command chassign runs one end-to-end channel assignment: it loads a
// config file, a module catalogue, and a device manifest, extracts points
// from an input document, assigns them to physical channels, validates the
// result, and prints a summary. This is ambient wiring, not a core
// interface; every package it calls depends only on its own inputs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"chassign/internal/csvsource"
	"chassign/internal/devicelist"
	"chassign/internal/yamlcatalogue"
	"chassign/pkg/assigner"
	"chassign/pkg/catalogue"
	"chassign/pkg/classification"
	"chassign/pkg/config"
	"chassign/pkg/extractor"
	"chassign/pkg/grouper"
	"chassign/pkg/logging"
	"chassign/pkg/metrics"
	"chassign/pkg/rack"
	"chassign/pkg/types"
	"chassign/pkg/validator"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML application config")
	documentPath := flag.String("document", "", "path to the input point sheet (CSV)")
	cataloguePath := flag.String("catalogue", "", "path to the module catalogue YAML file, overrides config")
	devicesPath := flag.String("devices", "", "path to the device manifest YAML file")
	flag.Parse()

	log := logging.NewLogger("chassign", logging.INFO, false)

	if *documentPath == "" || *devicesPath == "" {
		log.Error("-document and -devices are required")
		os.Exit(2)
	}

	mgr := config.NewManager()
	cfg, err := mgr.LoadConfig(*configPath)
	if err != nil {
		log.Error("failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	log = logging.NewLogger("chassign", logging.ParseLogLevel(cfg.Logging.Level), cfg.Logging.Format == "json")

	cataloguePathResolved := cfg.Catalogue.Path
	if *cataloguePath != "" {
		cataloguePathResolved = *cataloguePath
	}

	reg := metrics.NewRegistry(prometheus.DefaultRegisterer)
	start := time.Now()

	sysConfig, points, err := run(cfg, cataloguePathResolved, *devicesPath, *documentPath)
	if err != nil {
		log.Error("run failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	idx := rack.NewIndex(sysConfig)
	groups := grouper.Group(points)
	result := assigner.Assign(groups, idx, assigner.Options{EnablePairedRackPrepass: cfg.Assigner.EnablePairedRackPrepass})

	excluded := 0
	for _, p := range points {
		if p.Excluded() {
			excluded++
		}
	}

	findings := validator.ValidateSheet(mainSheetRows(points, result), nil)

	reg.RecordRun(metrics.RunSummary{
		Assigned: result.Assigned,
		Failed:   result.Failed,
		Excluded: excluded,
		Duration: time.Since(start),
	})

	fmt.Printf("points processed: %d, assigned: %d, shortfall: %d, excluded: %d\n",
		result.Attempted, result.Assigned, result.Failed, excluded)

	for _, u := range result.Unassigned {
		fmt.Printf("unassigned: %s (%s): %s\n", u.Tag, u.Kind, u.Reason)
	}
	for _, f := range findings {
		fmt.Printf("validation: %s\n", f.Error())
	}

	if result.Failed > 0 || len(findings) > 0 {
		os.Exit(1)
	}
}

// run loads the catalogue, the device manifest, builds the Rack Model, and
// extracts/classifies every point in the input document.
func run(cfg *config.Config, cataloguePath, devicesPath, documentPath string) (types.SystemConfiguration, []types.Point, error) {
	store, err := yamlcatalogue.Load(cataloguePath)
	if err != nil {
		return types.SystemConfiguration{}, nil, err
	}
	cat := catalogue.NewStoreFromExternal(store)

	devices, err := devicelist.Load(devicesPath)
	if err != nil {
		return types.SystemConfiguration{}, nil, err
	}

	sysConfig, err := rack.Build(devices, cat, cfg.Rack.SlotsPerRack, cfg.Rack.ReservedSlots)
	if err != nil {
		return types.SystemConfiguration{}, nil, err
	}

	doc, err := csvsource.Open(documentPath)
	if err != nil {
		return types.SystemConfiguration{}, nil, err
	}

	rawRows, err := extractor.Extract(doc)
	if err != nil {
		return types.SystemConfiguration{}, nil, err
	}

	points := make([]types.Point, 0, len(rawRows))
	for i, raw := range rawRows {
		p, err := classification.Classify(raw)
		if err != nil {
			continue
		}
		p.ID = strconv.Itoa(i)
		points = append(points, p)
	}

	return sysConfig, points, nil
}

// mainSheetRows projects every non-excluded point, assigned or not, into
// validator.Row values for the main IO sheet. HMIName is taken from the instrument tag since the input
// document carries no separate HMI-naming column.
func mainSheetRows(points []types.Point, result assigner.Result) []validator.Row {
	rows := make([]validator.Row, 0, len(points))
	for i, p := range points {
		if p.Excluded() {
			continue
		}
		rows = append(rows, validator.Row{
			Sheet:       "IO点表",
			ExcelRow:    i + 2,
			HMIName:     p.InstrumentTag,
			Description: p.Description,
			PowerSupply: p.PowerSupply,
			Wiring:      p.Wiring,
			ModuleKind:  p.Kind,
			RangeLow:    p.RangeLow,
			RangeHigh:   p.RangeHigh,
			SLL:         p.SLL,
			SL:          p.SL,
			SH:          p.SH,
			SHH:         p.SHH,
		})
	}
	return rows
}
