// Package stats aggregates contribution rows across a batch of samples so a
// caller can see which features carry a class's predictions overall rather
// than for one sample.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// ColumnSummary holds aggregates for one contribution column across a
// batch. For a classes x (features+1) attribution, the last column is the
// bias contribution.
type ColumnSummary struct {
	Index   int     `json:"index"`
	Name    string  `json:"name,omitempty"`
	Mean    float64 `json:"mean"`
	MeanAbs float64 `json:"mean_abs"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes per-column aggregates over contribution rows, one row
// per sample, all the same width. names is optional; when supplied it must
// match the row width.
func Summarize(rows [][]float64, names []string) ([]ColumnSummary, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to summarize")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("rows must not be empty")
	}
	for r := range rows {
		if len(rows[r]) != width {
			return nil, fmt.Errorf("row %d has %d columns, want %d", r, len(rows[r]), width)
		}
	}
	if len(names) != 0 && len(names) != width {
		return nil, fmt.Errorf("%d names for %d columns", len(names), width)
	}

	summaries := make([]ColumnSummary, width)
	for col := 0; col < width; col++ {
		s := ColumnSummary{Index: col, Min: math.Inf(1), Max: math.Inf(-1)}
		if len(names) != 0 {
			s.Name = names[col]
		}

		sum, sumAbs := 0.0, 0.0
		for _, row := range rows {
			v := row[col]
			sum += v
			sumAbs += math.Abs(v)
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		n := float64(len(rows))
		s.Mean = sum / n
		s.MeanAbs = sumAbs / n

		acc := 0.0
		for _, row := range rows {
			diff := row[col] - s.Mean
			acc += diff * diff
		}
		s.Std = math.Sqrt(acc / n)

		summaries[col] = s
	}
	return summaries, nil
}

// RankByMeanAbs returns the columns ordered by descending mean absolute
// contribution, truncated to limit when limit > 0. Ties keep column order
// so ranking stays deterministic.
func RankByMeanAbs(summaries []ColumnSummary, limit int) []ColumnSummary {
	ranked := make([]ColumnSummary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MeanAbs > ranked[j].MeanAbs
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
