package wordcloud

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ironsheep/ocr-batch/internal/nlp"
)

// Frequencies tokenizes text, drops English stopwords and returns every
// remaining word with its count, most frequent first.
func Frequencies(text string) []nlp.Entry {
	counter := nlp.NewCounter()
	counter.Add(nlp.Tokens(text, nlp.Stopwords())...)
	return counter.MostCommon(0)
}

// BarChart renders the first n entries as a PNG bar chart.
func BarChart(w io.Writer, title string, entries []nlp.Entry, n int) error {
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	if len(entries) == 0 {
		return ErrNoWords
	}

	bars := make([]chart.Value, len(entries))
	for i, e := range entries {
		bars[i] = chart.Value{Label: e.Key, Value: float64(e.Count)}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    max(400, 60*len(bars)),
		Height:   500,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(entries[0].Count),
			},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}
