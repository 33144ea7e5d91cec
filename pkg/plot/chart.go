package plot

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 165, B: 0, A: 255},
}

// bounds returns the data extent, widened where it would otherwise be empty.
func bounds(series []*Series) (xMin, xMax, yMax float64) {
	xMin, xMax, yMax = math.Inf(1), math.Inf(-1), 0
	for _, s := range series {
		for i := range s.X {
			xMin = math.Min(xMin, s.X[i])
			xMax = math.Max(xMax, s.X[i])
			yMax = math.Max(yMax, s.Y[i])
		}
	}
	if math.IsInf(xMin, 1) {
		xMin, xMax = 0, 1
	}
	if xMax <= xMin {
		xMax = xMin + 1
	}
	if yMax <= 0 {
		yMax = 1
	}
	return xMin, xMax, yMax
}

// RenderSVG draws every series as points against days, like the gnuplot script does.
func RenderSVG(w io.Writer, series []*Series, title string) error {
	xMin, xMax, yMax := bounds(series)

	cs := make([]chart.Series, 0, len(series))
	for n, s := range series {
		color := palette[n%len(palette)]
		cs = append(cs, chart.ContinuousSeries{
			Name:    filepath.Base(s.Path),
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2.0,
				DotColor:    color,
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  960,
		Height: 540,
		XAxis: chart.XAxis{
			Name:  X_AXIS_LABEL,
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  YLabel(series),
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph.Render(chart.SVG, w)
}
