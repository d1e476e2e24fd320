package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ironsheep/ocr-batch/internal/batch"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no records to chart")

const (
	chartWidth  = 1200
	chartHeight = 600
)

func flatLine(xvalues []float64, y float64, c drawing.Color) chart.ContinuousSeries {
	yvalues := make([]float64, len(xvalues))
	for i := range yvalues {
		yvalues[i] = y
	}
	return chart.ContinuousSeries{
		XValues: xvalues,
		YValues: yvalues,
		Style: chart.Style{
			StrokeColor:     c,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}

// ConfidenceChart renders the average confidence of each record, in
// record order, as a PNG line chart. Images below threshold are annotated
// with their position and a dashed line marks the threshold itself.
func ConfidenceChart(w io.Writer, title string, records []batch.Record, threshold float64) error {
	if len(records) == 0 {
		return ErrNoData
	}

	xvalues := make([]float64, len(records))
	yvalues := make([]float64, len(records))
	var annotations []chart.Value2
	for i, rec := range records {
		x := float64(i + 1)
		xvalues[i] = x
		yvalues[i] = rec.AvgConfidence
		if rec.AvgConfidence < threshold {
			annotations = append(annotations, chart.Value2{
				Label:  fmt.Sprintf("%d", i+1),
				XValue: x,
				YValue: rec.AvgConfidence,
			})
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Avg Confidence",
			XValues: xvalues,
			YValues: yvalues,
		},
		flatLine(xvalues, threshold, chart.ColorRed),
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: annotations})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "Image",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(len(records) + 1),
			},
		},
		YAxis: chart.YAxis{
			Name: "Confidence",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 1,
			},
		},
		Series: series,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
