package chart

import (
	"errors"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"NanoTracker/internal/model"
)

// seriesPalette cycles per series: blue, red, magenta, cyan, green, orange.
var seriesPalette = []drawing.Color{
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff},
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x00, G: 0xa0, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
}

// Render writes a PNG line chart of the given series to outputPath.
// Rendering reads only its inputs; it never touches tracker state.
func (c *Composer) Render(outputPath string, series []model.Series) error {
	if len(series) == 0 {
		return errors.New("render: no series")
	}

	chartSeries := make([]chart.Series, 0, len(series))
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		ts := chart.TimeSeries{
			Name:    s.Name,
			XValues: make([]time.Time, len(s.Points)),
			YValues: make([]float64, len(s.Points)),
			Style: chart.Style{
				StrokeColor: seriesPalette[i%len(seriesPalette)],
				StrokeWidth: 2,
			},
		}
		for j, p := range s.Points {
			ts.XValues[j] = p.At
			ts.YValues[j] = p.Words
		}
		chartSeries = append(chartSeries, ts)
	}
	if len(chartSeries) == 0 {
		return errors.New("render: all series empty")
	}

	ch := chart.Chart{
		Title:      "Daily Wordcount",
		Width:      c.Width,
		Height:     c.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: "Words"},
		Series:     chartSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := ch.Render(chart.PNG, out); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
