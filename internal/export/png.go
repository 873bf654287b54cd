package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/qcviz/internal/dist"
)

var ErrTooFewPoints = errors.New("export: chart needs at least two points")

func hexColor(c string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}

// HistogramPNG renders the distribution as a bar chart. The y axis is
// fixed to [0, 1] so an all-zero distribution still renders.
func HistogramPNG(w io.Writer, d dist.Distribution, labels []string, title, fill string) error {
	if len(labels) == 0 {
		return fmt.Errorf("export: histogram has no labels")
	}
	bars := make([]chart.Value, len(labels))
	for i, l := range labels {
		bars[i] = chart.Value{
			Label: "|" + l + ">",
			Value: d.Get(l),
			Style: chart.Style{FillColor: hexColor(fill), StrokeColor: hexColor(fill)},
		}
	}
	bc := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      max(320, 96*len(labels)),
		Height:     400,
		BarWidth:   48,
		YAxis: chart.YAxis{
			Name:  "Probability",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// EntanglementPNG renders the score over time.
func EntanglementPNG(w io.Writer, times, scores []float64, title string) error {
	if len(times) < 2 || len(times) != len(scores) {
		return ErrTooFewPoints
	}
	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      800,
		Height:     320,
		XAxis: chart.XAxis{
			Name:  "Time (s)",
			Range: &chart.ContinuousRange{Min: times[0], Max: times[len(times)-1]},
		},
		YAxis: chart.YAxis{
			Name:  "Entanglement",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "entanglement",
				XValues: times,
				YValues: scores,
				Style:   chart.Style{StrokeColor: hexColor("#ff0000"), StrokeWidth: 2},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}
