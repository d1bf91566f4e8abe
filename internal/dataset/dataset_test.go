package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSVWithHeader(t *testing.T) {
	in := "sepal_len,sepal_wid\n5.1, 3.5\n4.9,3.0\n"

	samples, err := ReadCSV(strings.NewReader(in), true)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !reflect.DeepEqual(samples.Columns, []string{"sepal_len", "sepal_wid"}) {
		t.Fatalf("unexpected columns: %v", samples.Columns)
	}
	want := [][]float64{{5.1, 3.5}, {4.9, 3.0}}
	if !reflect.DeepEqual(samples.Rows, want) {
		t.Fatalf("unexpected rows: %v", samples.Rows)
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	samples, err := ReadCSV(strings.NewReader("1,2\n3,4\n"), false)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if samples.Columns != nil {
		t.Fatalf("expected no columns, got %v", samples.Columns)
	}
	if len(samples.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(samples.Rows))
	}
}

func TestReadCSVErrors(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		hasHeader bool
		wantIn    string
	}{
		{"empty", "", true, "no rows"},
		{"header only", "a,b\n", true, "no data rows"},
		{"bad cell", "a,b\n1,x\n", true, "row 2 column 2"},
		{"ragged", "1,2\n3\n", false, "row 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(c.in), c.hasHeader)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantIn) {
				t.Fatalf("error %q does not mention %q", err, c.wantIn)
			}
		})
	}
}

func TestReadJSONObjectForm(t *testing.T) {
	in := `{"columns": ["a", "b"], "rows": [[1, 2], [3, 4]]}`

	samples, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if !reflect.DeepEqual(samples.Columns, []string{"a", "b"}) {
		t.Fatalf("unexpected columns: %v", samples.Columns)
	}
	if len(samples.Rows) != 2 || samples.Rows[1][1] != 4 {
		t.Fatalf("unexpected rows: %v", samples.Rows)
	}
}

func TestReadJSONBareRows(t *testing.T) {
	samples, err := ReadJSON(strings.NewReader(`[[0.5, -1], [2, 3]]`))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if len(samples.Rows) != 2 || samples.Rows[0][1] != -1 {
		t.Fatalf("unexpected rows: %v", samples.Rows)
	}
}

func TestReadJSONErrors(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"rows": []}`)); err == nil {
		t.Fatal("expected error for empty rows")
	}
	if _, err := ReadJSON(strings.NewReader(`[[1, 2], [3]]`)); err == nil {
		t.Fatal("expected error for ragged rows")
	}
	if _, err := ReadJSON(strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "samples.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	fromCSV, err := LoadFile(csvPath, true)
	if err != nil {
		t.Fatalf("load csv: %v", err)
	}
	if len(fromCSV.Rows) != 1 || fromCSV.Rows[0][0] != 1 {
		t.Fatalf("unexpected csv rows: %v", fromCSV.Rows)
	}

	jsonPath := filepath.Join(dir, "samples.json")
	if err := os.WriteFile(jsonPath, []byte(`[[7, 8]]`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	fromJSON, err := LoadFile(jsonPath, false)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if len(fromJSON.Rows) != 1 || fromJSON.Rows[0][1] != 8 {
		t.Fatalf("unexpected json rows: %v", fromJSON.Rows)
	}
}
