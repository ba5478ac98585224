package viz_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/lenoxlabs/lenox/internal/viz"
)

// ---------------------------------------------------------------------------
// ParseKind
// ---------------------------------------------------------------------------

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  viz.Kind
	}{
		{name: "line", query: "show a line of prices", want: viz.KindLine},
		{name: "linear", query: "linear trend please", want: viz.KindLine},
		{name: "bar", query: "bar chart of volumes", want: viz.KindBar},
		{name: "column", query: "column view", want: viz.KindBar},
		{name: "scatter", query: "scatter these values", want: viz.KindScatter},
		{name: "pie", query: "pie of my holdings", want: viz.KindPie},
		{name: "default_line", query: "plot 1 2 3", want: viz.KindLine},
		{name: "first_match_wins", query: "line or bar, whichever", want: viz.KindLine},
		{name: "case_insensitive", query: "PIE please", want: viz.KindPie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := viz.ParseKind(tt.query); got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ExtractSeries
// ---------------------------------------------------------------------------

func TestExtractSeries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		wantX   []float64
		wantY   []float64
		wantErr error
	}{
		{name: "integers", query: "plot 10 20 30", wantX: []float64{1, 2, 3}, wantY: []float64{10, 20, 30}},
		{name: "floats", query: "graph 1.5 2.25", wantX: []float64{1, 2}, wantY: []float64{1.5, 2.25}},
		{name: "comma_separated", query: "chart 5, 6, 7", wantX: []float64{1, 2, 3}, wantY: []float64{5, 6, 7}},
		{name: "negative_values", query: "plot -3 4", wantX: []float64{1, 2}, wantY: []float64{-3, 4}},
		{name: "no_numbers", query: "show me a graph of nothing", wantErr: viz.ErrNoData},
		{name: "empty", query: "", wantErr: viz.ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := viz.ExtractSeries(tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractSeries(%q) error = %v, want %v", tt.query, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !slices.Equal(got.X, tt.wantX) || !slices.Equal(got.Y, tt.wantY) {
				t.Errorf("ExtractSeries(%q) = {X: %v, Y: %v}, want {X: %v, Y: %v}",
					tt.query, got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// The no-data behavior must be stable across calls, not flaky.
func TestExtractSeries_NoDataIsDeterministic(t *testing.T) {
	t.Parallel()

	for range 5 {
		if _, err := viz.ExtractSeries("show me a graph of nothing"); !errors.Is(err, viz.ErrNoData) {
			t.Fatalf("ExtractSeries() error = %v, want ErrNoData on every call", err)
		}
	}
}

// ---------------------------------------------------------------------------
// JSONBuilder
// ---------------------------------------------------------------------------

func TestJSONBuilder_Build(t *testing.T) {
	t.Parallel()

	b := &viz.JSONBuilder{Title: "Holdings"}
	out, err := b.Build(context.Background(), viz.Series{X: []float64{1, 2}, Y: []float64{10, 20}}, viz.KindBar)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var doc struct {
		Data []struct {
			Type string    `json:"type"`
			X    []float64 `json:"x"`
			Y    []float64 `json:"y"`
		} `json:"data"`
		Layout struct {
			Title string `json:"title"`
		} `json:"layout"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Build() output is not valid JSON: %v", err)
	}
	if len(doc.Data) != 1 || doc.Data[0].Type != "bar" {
		t.Errorf("Build() trace = %+v, want one bar trace", doc.Data)
	}
	if !slices.Equal(doc.Data[0].Y, []float64{10, 20}) {
		t.Errorf("Build() y = %v, want [10 20]", doc.Data[0].Y)
	}
	if doc.Layout.Title != "Holdings" {
		t.Errorf("Build() title = %q", doc.Layout.Title)
	}
}
