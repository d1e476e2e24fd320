package report

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ironsheep/ocr-batch/internal/batch"
)

// PDFFileName is the optional PDF report written next to the images.
const PDFFileName = "stats_report.pdf"

// SavePDF writes the report lines and, when there are records, the
// confidence chart to a single-page A4 PDF at path.
func SavePDF(path, title string, run *batch.Run, threshold float64) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	lines := Lines(title, run.Stats)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, lines[0], "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines[3:] {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	err := ConfidenceChart(&buf, "Average confidence per image", run.Records, threshold)
	switch {
	case errors.Is(err, ErrNoData):
	case err != nil:
		return err
	default:
		pdf.Ln(6)
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("confidence", opts, &buf)
		pageWidth, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		width := pageWidth - left - right
		pdf.ImageOptions("confidence", left, pdf.GetY(), width, width*chartHeight/chartWidth, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
