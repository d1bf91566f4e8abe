// Package dataset loads sample matrices for batch attribution runs.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Samples is a loaded sample matrix. Columns is populated from a CSV
// header or JSON metadata when present; every row has the same width.
type Samples struct {
	Columns []string    `json:"columns,omitempty"`
	Rows    [][]float64 `json:"rows"`
}

// LoadFile reads samples from path, dispatching on the file extension:
// .json for the JSON form, anything else is treated as CSV. hasHeader only
// applies to CSV input.
func LoadFile(path string, hasHeader bool) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return Samples{}, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadCSV(f, hasHeader)
}

// ReadCSV parses a numeric sample matrix. With hasHeader set the first
// record names the columns. Every data row must have the same width and
// parse as floats; failures carry the 1-based row and column.
func ReadCSV(r io.Reader, hasHeader bool) (Samples, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var samples Samples
	row := 0
	if hasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return Samples{}, fmt.Errorf("csv has no rows")
		}
		if err != nil {
			return Samples{}, fmt.Errorf("read csv header: %w", err)
		}
		columns := make([]string, len(header))
		for i, name := range header {
			columns[i] = strings.TrimSpace(name)
		}
		samples.Columns = columns
		row = 1
	}

	width := -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return Samples{}, fmt.Errorf("read csv row %d: %w", row, err)
		}
		if width < 0 {
			width = len(record)
		}
		if len(record) != width {
			return Samples{}, fmt.Errorf("csv row %d has %d fields, want %d", row, len(record), width)
		}

		values := make([]float64, len(record))
		for col, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Samples{}, fmt.Errorf("csv row %d column %d: parse %q: %w", row, col+1, field, err)
			}
			values[col] = v
		}
		samples.Rows = append(samples.Rows, values)
	}

	if len(samples.Rows) == 0 {
		return Samples{}, fmt.Errorf("csv has no data rows")
	}
	if samples.Columns != nil && len(samples.Columns) != width {
		return Samples{}, fmt.Errorf("csv header has %d columns, rows have %d", len(samples.Columns), width)
	}
	return samples, nil
}

// ReadJSON parses either the object form {"columns": [...], "rows": [...]}
// or a bare array of rows.
func ReadJSON(r io.Reader) (Samples, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Samples{}, err
	}

	var samples Samples
	if err := json.Unmarshal(data, &samples); err != nil {
		var rows [][]float64
		if rowsErr := json.Unmarshal(data, &rows); rowsErr != nil {
			return Samples{}, fmt.Errorf("parse samples json: %w", err)
		}
		samples = Samples{Rows: rows}
	}

	if len(samples.Rows) == 0 {
		return Samples{}, fmt.Errorf("samples json has no rows")
	}
	width := len(samples.Rows[0])
	for i, row := range samples.Rows {
		if len(row) != width {
			return Samples{}, fmt.Errorf("samples json row %d has %d values, want %d", i+1, len(row), width)
		}
	}
	if samples.Columns != nil && len(samples.Columns) != width {
		return Samples{}, fmt.Errorf("samples json has %d columns for rows of width %d", len(samples.Columns), width)
	}
	return samples, nil
}
