package main

import (
	"fmt"
	"strconv"
	"strings"

	"piro/internal/dataset"
	"piro/internal/stats"
)

// parseSample turns "-sample 1.0,2.5,-3" into a feature vector.
func parseSample(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("sample must not be empty")
	}
	fields := strings.Split(raw, ",")
	sample := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("sample value %d: parse %q: %w", i+1, field, err)
		}
		sample[i] = v
	}
	return sample, nil
}

func loadSamples(path string, hasHeader bool) ([][]float64, error) {
	samples, err := dataset.LoadFile(path, hasHeader)
	if err != nil {
		return nil, fmt.Errorf("load samples %s: %w", path, err)
	}
	return samples.Rows, nil
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func printRankedColumns(columns []stats.ColumnSummary, top int) {
	if len(columns) == 0 {
		return
	}
	fmt.Println("columns by mean |contribution|:")
	for _, col := range stats.RankByMeanAbs(columns, top) {
		name := col.Name
		if name == "" {
			name = fmt.Sprintf("feature %d", col.Index)
		}
		fmt.Printf("  %-16s mean=%.6g mean|x|=%.6g std=%.6g min=%.6g max=%.6g\n",
			name, col.Mean, col.MeanAbs, col.Std, col.Min, col.Max)
	}
}
