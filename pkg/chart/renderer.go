// Package chart renders distribution summaries as bar chart images. It is a
// presentation boundary: it receives ordered (label, value) pairs and
// returns encoded PNG bytes, carrying no numeric semantics of its own.
package chart

import (
	"bytes"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/driveline-labs/survey-engine/pkg/models"
)

// maxLabelRunes truncates long category labels so rotated tick labels stay
// legible.
const maxLabelRunes = 16

// Renderer produces a chart image from an ordered label/value series.
type Renderer interface {
	RenderBar(labels []string, values []float64, title string, semantics models.ValueSemantics) ([]byte, error)
}

type barRenderer struct {
	width  vg.Length
	height vg.Length
	logger *zap.Logger
}

// NewRenderer builds the default PNG bar chart renderer.
func NewRenderer(logger *zap.Logger) Renderer {
	return &barRenderer{
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
		logger: logger.Named("chart"),
	}
}

// RenderBar draws one bar per (label, value) pair, preserving input order.
func (r *barRenderer) RenderBar(labels []string, values []float64, title string, semantics models.ValueSemantics) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil, fmt.Errorf("bar chart needs matching labels and values, got %d/%d", len(labels), len(values))
	}

	p := plot.New()
	p.Title.Text = title
	if semantics == models.SemanticsPercentage {
		p.Y.Label.Text = "%"
	} else {
		p.Y.Label.Text = "count"
	}

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	p.Add(bars)

	ticks := make([]string, len(labels))
	for i, l := range labels {
		ticks[i] = truncateLabel(l)
	}
	p.NominalX(ticks...)
	// Rotate tick labels so adjacent category names do not overlap.
	p.X.Tick.Label.Rotation = math.Pi / 5
	p.X.Tick.Label.XAlign = -0.9
	p.X.Tick.Label.YAlign = -0.5

	w, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}

	r.logger.Debug("Rendered bar chart",
		zap.String("title", title),
		zap.Int("bars", len(labels)),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelRunes {
		return s
	}
	return string(runes[:maxLabelRunes-1]) + "…"
}
