package viz

import (
	"context"
	"encoding/json"
	"fmt"
)

// Builder renders a series into an opaque serialized chart document.
// The dispatcher treats the output as content for a visual envelope and
// never inspects it.
type Builder interface {
	Build(ctx context.Context, series Series, kind Kind) (string, error)
}

// JSONBuilder is the default Builder. It emits a self-contained figure
// document in the plotly style: a data trace plus a layout block.
type JSONBuilder struct {
	// Title is set on every figure's layout. Empty means no title.
	Title string
}

// Compile-time interface check.
var _ Builder = (*JSONBuilder)(nil)

type figureTrace struct {
	Type Kind      `json:"type"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

type figureLayout struct {
	Title string `json:"title,omitempty"`
}

type figure struct {
	Data   []figureTrace `json:"data"`
	Layout figureLayout  `json:"layout"`
}

// Build serializes the series as a figure document.
func (b *JSONBuilder) Build(_ context.Context, series Series, kind Kind) (string, error) {
	doc := figure{
		Data:   []figureTrace{{Type: kind, X: series.X, Y: series.Y}},
		Layout: figureLayout{Title: b.Title},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("viz: marshal figure: %w", err)
	}
	return string(out), nil
}
