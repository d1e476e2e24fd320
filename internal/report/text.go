package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/ocr-batch/internal/batch"
)

// FileName is the stats report written next to the images.
const FileName = "stats_report.txt"

// DefaultTitle heads the report when no engine-specific title is given.
const DefaultTitle = "OCR Stats Report"

// Lines returns the report body: title, underline, a blank line, then one
// line per statistic. Percentages with a zero denominator are 0.00%.
func Lines(title string, s batch.Stats) []string {
	if title == "" {
		title = DefaultTitle
	}
	return []string{
		title,
		strings.Repeat("=", len(title)),
		"",
		fmt.Sprintf("Time Taken: %.2f seconds", s.Elapsed.Seconds()),
		fmt.Sprintf("Total Images: %d", s.TotalImages),
		fmt.Sprintf("Images with Text Extracted: %d (%.2f%%)", s.ImagesWithText, s.TextRate()),
		fmt.Sprintf("Images without Text: %d (%.2f%%)", s.ImagesWithoutText, s.NoTextRate()),
		fmt.Sprintf("Failed Extractions: %d (%.2f%%)", s.FailedExtractions, s.FailureRate()),
		fmt.Sprintf("Low Confidence Text Elements: %d (%d / %d = %.2f%%)",
			s.LowConfidenceElements, s.LowConfidenceElements, s.TotalElements, s.LowConfidenceRate()),
		fmt.Sprintf("Spell Errors (English): %d (%d / %d = %.2f%%)",
			s.SpellErrors, s.SpellErrors, s.TotalElements, s.SpellErrorRate()),
	}
}

// WriteText writes the report to w.
func WriteText(w io.Writer, title string, s batch.Stats) error {
	for _, line := range Lines(title, s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// SaveText writes FileName into dir and returns its path.
func SaveText(dir, title string, s batch.Stats) (string, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	if err := WriteText(f, title, s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	return path, nil
}
