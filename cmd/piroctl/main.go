package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"piro/internal/storage"
	piroapi "piro/pkg/piro"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "import":
		return runImport(ctx, args[1:])
	case "networks":
		return runNetworks(ctx, args[1:])
	case "attribute":
		return runAttribute(ctx, args[1:])
	case "batch":
		return runBatch(ctx, args[1:])
	case "reports":
		return runReports(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func storeFlags(fs *flag.FlagSet) (storeKind, dbPath *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", "piro.db", "sqlite database path")
	return storeKind, dbPath
}

func newClient(storeKind, dbPath string) (*piroapi.Client, error) {
	return piroapi.New(piroapi.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("store reset")
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	path := fs.String("network", "", "path to network description json")
	id := fs.String("id", "", "network id (generated when empty)")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return usageError("import requires -network")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	item, err := client.ImportNetwork(ctx, piroapi.ImportRequest{Path: *path, ID: *id, Name: *name})
	if err != nil {
		return err
	}
	fmt.Printf("imported network %s (%d layers, %d features, %d classes)\n", item.ID, item.Layers, item.Features, item.Classes)
	return nil
}

func runNetworks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("networks", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	items, err := client.Networks(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no networks")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s  name=%s layers=%d features=%d classes=%d\n", item.ID, item.Name, item.Layers, item.Features, item.Classes)
	}
	return nil
}

func runAttribute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attribute", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	networkID := fs.String("network-id", "", "network to attribute against")
	sampleFlag := fs.String("sample", "", "comma-separated feature values")
	weighted := fs.Bool("weighted", false, "scale feature contributions by the sample values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *networkID == "" {
		return usageError("attribute requires -network-id")
	}
	sample, err := parseSample(*sampleFlag)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	summary, err := client.Attribute(ctx, piroapi.AttributeRequest{
		NetworkID: *networkID,
		Sample:    sample,
		Weighted:  *weighted,
	})
	if err != nil {
		return err
	}

	fmt.Printf("report %s (exact=%v)\n", summary.ReportID, summary.Exact)
	for c, row := range summary.Matrix {
		fmt.Printf("class %d output=%.6g contributions=%s\n", c, summary.Outputs[c], formatRow(row))
	}
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	networkID := fs.String("network-id", "", "network to attribute against")
	samplesPath := fs.String("samples", "", "csv or json file with one sample per row")
	header := fs.Bool("header", true, "csv file has a header row")
	workers := fs.Int("workers", 4, "concurrent attribution workers")
	weighted := fs.Bool("weighted", false, "scale feature contributions by the sample values")
	keepGoing := fs.Bool("continue-on-error", false, "skip failing samples instead of aborting")
	class := fs.Int("class", 0, "class index for the per-feature summary")
	top := fs.Int("top", 10, "how many ranked columns to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *networkID == "" || *samplesPath == "" {
		return usageError("batch requires -network-id and -samples")
	}

	samples, err := loadSamples(*samplesPath, *header)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	summary, err := client.AttributeBatch(ctx, piroapi.BatchRequest{
		NetworkID:       *networkID,
		Samples:         samples,
		Workers:         *workers,
		Weighted:        *weighted,
		ContinueOnError: *keepGoing,
		SummaryClass:    *class,
	})
	if err != nil {
		return err
	}

	fmt.Printf("attributed %d/%d samples (%d reports)\n", summary.Attempted-summary.Failed, summary.Attempted, len(summary.ReportIDs))
	printRankedColumns(summary.Columns, *top)
	return nil
}

func runReports(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	networkID := fs.String("network-id", "", "filter by network")
	limit := fs.Int("limit", 20, "maximum reports to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	reports, err := client.Reports(ctx, piroapi.ReportsRequest{NetworkID: *networkID, Limit: *limit})
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("no reports")
		return nil
	}
	for _, report := range reports {
		age := report.CreatedAtUTC
		if created, err := time.Parse(time.RFC3339, report.CreatedAtUTC); err == nil {
			age = humanize.Time(created)
		}
		size := uint64(0)
		if payload, err := json.Marshal(report.Matrix); err == nil {
			size = uint64(len(payload))
		}
		fmt.Printf("%s  network=%s classes=%d weighted=%v %s (%s)\n",
			report.ID, report.NetworkID, len(report.Matrix), report.Weighted, age, humanize.Bytes(size))
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	reportID := fs.String("report-id", "", "report to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reportID == "" {
		return usageError("show requires -report-id")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	report, err := client.Report(ctx, *reportID)
	if err != nil {
		return err
	}

	fmt.Printf("report %s network=%s weighted=%v exact=%v\n", report.ID, report.NetworkID, report.Weighted, report.Exact)
	fmt.Printf("sample: %s\n", formatRow(report.Sample))
	for c, row := range report.Matrix {
		label := fmt.Sprintf("class %d", c)
		if c < len(report.ClassNames) {
			label = report.ClassNames[c]
		}
		fmt.Printf("%s output=%.6g contributions=%s\n", label, report.Outputs[c], formatRow(row))
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	reportID := fs.String("report-id", "", "report to export")
	outDir := fs.String("out-dir", "exports", "artifact directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reportID == "" {
		return usageError("export requires -report-id")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	exported, err := client.Export(ctx, piroapi.ExportRequest{ReportID: *reportID, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", exported.ReportID, exported.Path)
	return nil
}

func usageError(message string) error {
	return fmt.Errorf("%s\nusage: piroctl <init|reset|import|networks|attribute|batch|reports|show|export> [flags]", message)
}
