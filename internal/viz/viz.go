// Package viz turns visualization queries into chart series and
// delegates rendering to a Builder collaborator that produces an opaque
// serialized chart document.
package viz

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoData indicates the query contained no numeric tokens to chart.
var ErrNoData = errors.New("viz: no numeric data found in query")

// Kind is a chart type understood by builders.
type Kind string

// Kind constants for chart types.
const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindScatter Kind = "scatter"
	KindPie     Kind = "pie"
)

// kindRule pairs a chart kind with the keywords that select it.
// Evaluated in order; the first keyword hit wins, mirroring the intent
// classifier's first-match policy.
var kindRules = []struct {
	kind     Kind
	keywords []string
}{
	{KindLine, []string{"line", "linear"}},
	{KindBar, []string{"bar", "column"}},
	{KindScatter, []string{"scatter", "point"}},
	{KindPie, []string{"pie", "circle"}},
}

// ParseKind extracts the requested chart kind from a query.
// Defaults to line when no kind keyword is present.
func ParseKind(query string) Kind {
	q := strings.ToLower(query)
	for _, r := range kindRules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.kind
			}
		}
	}
	return KindLine
}

// Series is the x/y data handed to a Builder.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// ExtractSeries collects the numeric tokens of a query as the y-series,
// with x running 1..n. It returns ErrNoData when the query contains no
// numeric tokens; there is no fallback sample series.
func ExtractSeries(query string) (Series, error) {
	var y []float64
	for _, field := range strings.Fields(query) {
		field = strings.Trim(field, ",;")
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			y = append(y, v)
		}
	}
	if len(y) == 0 {
		return Series{}, ErrNoData
	}

	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i + 1)
	}
	return Series{X: x, Y: y}, nil
}
