// Package report writes the batch statistics produced by batch.Runner.
//
// SaveText writes stats_report.txt, the plain-text summary every run
// produces. SavePDF is optional and adds a per-image confidence chart drawn
// with go-chart.
package report
