// Package piro is the public surface of the contribution attribution
// engine: import frozen network descriptions, attribute samples against
// them, and keep the resulting reports in a store.
package piro

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"piro/internal/batch"
	"piro/internal/engine"
	"piro/internal/model"
	"piro/internal/stats"
	"piro/internal/storage"
)

const (
	defaultDBPath     = "piro.db"
	defaultExportsDir = "exports"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store      storage.Store
	exportsDir string
}

type ImportRequest struct {
	Path string
	ID   string
	Name string
}

type NetworkItem struct {
	ID       string
	Name     string
	Layers   int
	Features int
	Classes  int
}

type AttributeRequest struct {
	NetworkID string
	Sample    []float64
	Weighted  bool
}

type AttributeSummary struct {
	ReportID string
	Matrix   [][]float64
	Outputs  []float64
	Exact    bool
}

type BatchRequest struct {
	NetworkID       string
	Samples         [][]float64
	Workers         int
	Weighted        bool
	ContinueOnError bool

	// SummaryClass selects the class whose contribution rows feed the
	// per-feature summary.
	SummaryClass int
}

type BatchSummary struct {
	ReportIDs []string
	Attempted int
	Failed    int
	Columns   []stats.ColumnSummary
}

type ReportsRequest struct {
	NetworkID string
	Limit     int
}

type ExportRequest struct {
	ReportID string
	OutDir   string
}

type ExportSummary struct {
	ReportID string
	Path     string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store, exportsDir: exportsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Reset(ctx context.Context) error {
	return c.store.Reset(ctx)
}

// ImportNetwork loads a frozen network description from a JSON file,
// validates its layer chain, stamps identity and versions, and persists it.
func (c *Client) ImportNetwork(ctx context.Context, req ImportRequest) (NetworkItem, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return NetworkItem{}, err
	}

	var network model.Network
	if err := json.Unmarshal(data, &network); err != nil {
		return NetworkItem{}, fmt.Errorf("parse network %s: %w", req.Path, err)
	}

	if req.ID != "" {
		network.ID = req.ID
	}
	if network.ID == "" {
		network.ID = uuid.NewString()
	}
	if req.Name != "" {
		network.Name = req.Name
	}
	network.SchemaVersion = storage.CurrentSchemaVersion
	network.CodecVersion = storage.CurrentCodecVersion

	if err := engine.Validate(network); err != nil {
		return NetworkItem{}, fmt.Errorf("invalid network %s: %w", req.Path, err)
	}

	if err := c.store.SaveNetwork(ctx, network); err != nil {
		return NetworkItem{}, err
	}
	return networkItem(network), nil
}

func (c *Client) Networks(ctx context.Context) ([]NetworkItem, error) {
	networks, err := c.store.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]NetworkItem, len(networks))
	for i, network := range networks {
		items[i] = networkItem(network)
	}
	return items, nil
}

// Attribute runs one attribution call and persists the report.
func (c *Client) Attribute(ctx context.Context, req AttributeRequest) (AttributeSummary, error) {
	network, err := c.loadNetwork(ctx, req.NetworkID)
	if err != nil {
		return AttributeSummary{}, err
	}

	result, err := engine.Attribute(network, req.Sample, engine.Options{Weighted: req.Weighted})
	if err != nil {
		return AttributeSummary{}, err
	}

	record, err := c.saveReport(ctx, network, req.Sample, req.Weighted, result)
	if err != nil {
		return AttributeSummary{}, err
	}

	return AttributeSummary{
		ReportID: record.ID,
		Matrix:   result.Matrix,
		Outputs:  result.Outputs,
		Exact:    result.Exact,
	}, nil
}

// AttributeBatch attributes every sample, persists one report per success,
// and summarizes the requested class's contribution columns across the
// batch.
func (c *Client) AttributeBatch(ctx context.Context, req BatchRequest) (BatchSummary, error) {
	network, err := c.loadNetwork(ctx, req.NetworkID)
	if err != nil {
		return BatchSummary{}, err
	}

	out, err := batch.Run(ctx, network, req.Samples, batch.Config{
		Workers:         req.Workers,
		Weighted:        req.Weighted,
		ContinueOnError: req.ContinueOnError,
	})
	if err != nil {
		return BatchSummary{}, err
	}

	summary := BatchSummary{Attempted: len(req.Samples)}
	var rows [][]float64
	for i, result := range out.Results {
		if result == nil {
			summary.Failed++
			continue
		}
		if req.SummaryClass < 0 || req.SummaryClass >= len(result.Matrix) {
			return BatchSummary{}, fmt.Errorf("summary class %d out of range for %d classes", req.SummaryClass, len(result.Matrix))
		}

		record, err := c.saveReport(ctx, network, req.Samples[i], req.Weighted, *result)
		if err != nil {
			return BatchSummary{}, err
		}
		summary.ReportIDs = append(summary.ReportIDs, record.ID)
		rows = append(rows, result.Matrix[req.SummaryClass])
	}

	if len(rows) > 0 {
		columns, err := stats.Summarize(rows, columnNames(network, len(rows[0])))
		if err != nil {
			return BatchSummary{}, err
		}
		summary.Columns = columns
	}
	return summary, nil
}

func (c *Client) Reports(ctx context.Context, req ReportsRequest) ([]model.AttributionRecord, error) {
	return c.store.ListAttributions(ctx, req.NetworkID, req.Limit)
}

func (c *Client) Report(ctx context.Context, id string) (model.AttributionRecord, error) {
	record, ok, err := c.store.GetAttribution(ctx, id)
	if err != nil {
		return model.AttributionRecord{}, err
	}
	if !ok {
		return model.AttributionRecord{}, fmt.Errorf("report not found: %s", id)
	}
	return record, nil
}

// Export writes one report as a standalone JSON artifact for the
// presentation layer.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	record, err := c.Report(ctx, req.ReportID)
	if err != nil {
		return ExportSummary{}, err
	}

	outDir := req.OutDir
	if outDir == "" {
		outDir = c.exportsDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ExportSummary{}, err
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return ExportSummary{}, err
	}
	path := filepath.Join(outDir, fmt.Sprintf("attribution_%s.json", record.ID))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{ReportID: record.ID, Path: path}, nil
}

func (c *Client) loadNetwork(ctx context.Context, id string) (model.Network, error) {
	if id == "" {
		return model.Network{}, fmt.Errorf("network id is required")
	}
	network, ok, err := c.store.GetNetwork(ctx, id)
	if err != nil {
		return model.Network{}, err
	}
	if !ok {
		return model.Network{}, fmt.Errorf("network not found: %s", id)
	}
	return network, nil
}

func (c *Client) saveReport(ctx context.Context, network model.Network, sample []float64, weighted bool, result engine.Result) (model.AttributionRecord, error) {
	record := model.AttributionRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           uuid.NewString(),
		NetworkID:    network.ID,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Weighted:     weighted,
		Exact:        result.Exact,
		Sample:       append([]float64(nil), sample...),
		Matrix:       result.Matrix,
		Outputs:      result.Outputs,
		FeatureNames: network.FeatureNames,
		ClassNames:   network.ClassNames,
	}
	if err := c.store.SaveAttribution(ctx, record); err != nil {
		return model.AttributionRecord{}, err
	}
	return record, nil
}

func networkItem(network model.Network) NetworkItem {
	item := NetworkItem{ID: network.ID, Name: network.Name}
	for _, layer := range network.Layers {
		if len(layer.Weights) == 0 {
			continue
		}
		if item.Layers == 0 {
			item.Features = len(layer.Weights[0])
		}
		item.Layers++
		item.Classes = len(layer.Weights)
	}
	return item
}

func columnNames(network model.Network, width int) []string {
	if len(network.FeatureNames) != width-1 {
		return nil
	}
	names := make([]string, 0, width)
	names = append(names, network.FeatureNames...)
	return append(names, "bias")
}
