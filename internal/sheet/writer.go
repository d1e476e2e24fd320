package sheet

import (
	"math"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/batch"
	"github.com/ironsheep/ocr-batch/internal/imaging"
)

// Size is a thumbnail bounding box in pixels.
type Size struct {
	Width  int
	Height int
}

// Default thumbnail sizes per layout.
var (
	RunThumbnail     = Size{Width: 200, Height: 150}
	CompareThumbnail = Size{Width: 150, Height: 100}
	CatalogThumbnail = Size{Width: 180, Height: 100}
)

var (
	runColumns = []column{
		{"Image", 30},
		{"Image Name", 20},
		{"Extracted Text", 50},
		{"Avg Confidence", 15},
		{"Verification Status", 30},
		{"Misspelled Words", 50},
	}
	compareColumns = []column{
		{"Original Image", 30},
		{"Text from Original Image", 50},
		{"Original Image Word Count", 20},
		{"Original Misspelled Words", 30},
		{"Sharpened Image", 30},
		{"Text from Sharpened Image", 50},
		{"Sharpened Image Word Count", 20},
		{"Sharpened Misspelled Words", 30},
		{"Words Added", 30},
		{"Words Removed", 30},
	}
	catalogColumns = []column{
		{"Images", 30},
		{"File Names", 20},
		{"Image Dimensions", 25},
		{"Formats", 15},
		{"Extracted Text", 50},
		{"Status", 15},
	}
)

// Writer saves runner results as xlsx workbooks with embedded thumbnails.
// A picture that cannot be embedded is logged and its row is still written.
type Writer struct {
	RunThumbnail     Size
	CompareThumbnail Size
	CatalogThumbnail Size

	Cache *imaging.ImageCache
	Log   *logrus.Logger
}

// NewWriter returns a Writer with the default thumbnail sizes.
func NewWriter(log *logrus.Logger) *Writer {
	return &Writer{
		RunThumbnail:     RunThumbnail,
		CompareThumbnail: CompareThumbnail,
		CatalogThumbnail: CatalogThumbnail,
		Log:              log,
	}
}

// WriteRun saves the batch OCR records. Every row is as tall as the run
// thumbnail, whether or not its picture could be embedded.
func (w *Writer) WriteRun(path string, run *batch.Run) error {
	wb, err := newWorkbook(runColumns, w.Cache, w.Log)
	if err != nil {
		return err
	}

	for i, rec := range run.Records {
		row := i + 2
		if _, err := wb.embed(cell("A", row), rec.Path, w.RunThumbnail, false); err != nil {
			wb.log.WithField("file", rec.Name).WithError(err).Warn("failed to add image to workbook")
		}
		err := wb.setCells(row, 2,
			rec.Name,
			rec.Text,
			round2(rec.AvgConfidence),
			rec.Status,
			joinWords(rec.Misspelled),
		)
		if err != nil {
			wb.f.Close()
			return err
		}
		if err := wb.fitRow(row, w.RunThumbnail.Height); err != nil {
			wb.f.Close()
			return err
		}
	}
	return wb.save(path)
}

// WriteComparison saves original and filtered OCR side by side. The
// filtered picture is only embedded when filtering succeeded.
func (w *Writer) WriteComparison(path string, run *batch.ComparisonRun) error {
	wb, err := newWorkbook(compareColumns, w.Cache, w.Log)
	if err != nil {
		return err
	}

	for i, cmp := range run.Comparisons {
		row := i + 2
		height := 0
		for _, pic := range []struct {
			col, path string
		}{
			{"A", cmp.Original.Path},
			{"E", cmp.Filtered.Path},
		} {
			if pic.path == "" {
				continue
			}
			h, err := wb.embed(cell(pic.col, row), pic.path, w.CompareThumbnail, false)
			if err != nil {
				wb.log.WithField("file", cmp.Name).WithError(err).Warn("failed to add image to workbook")
				continue
			}
			height = max(height, h)
		}

		err := wb.setCells(row, 2,
			cmp.Original.Text,
			cmp.Original.WordCount,
			joinWords(cmp.Original.Misspelled),
		)
		if err != nil {
			wb.f.Close()
			return err
		}
		err = wb.setCells(row, 6,
			cmp.Filtered.Text,
			cmp.Filtered.WordCount,
			joinWords(cmp.Filtered.Misspelled),
			joinWords(cmp.Added),
			joinWords(cmp.Removed),
		)
		if err != nil {
			wb.f.Close()
			return err
		}
		if err := wb.fitRow(row, height); err != nil {
			wb.f.Close()
			return err
		}
	}
	return wb.save(path)
}

// WriteCatalog saves an inventory. Corrupted images get NA metadata and no
// picture; a picture that cannot be embedded changes the record's status to
// batch.StatusAddImageError.
func (w *Writer) WriteCatalog(path string, cat *batch.Catalog) error {
	wb, err := newWorkbook(catalogColumns, w.Cache, w.Log)
	if err != nil {
		return err
	}

	for i := range cat.Records {
		rec := &cat.Records[i]
		row := i + 2

		if rec.Status != batch.StatusCorrupted {
			h, err := wb.embed(cell("A", row), rec.Path, w.CatalogThumbnail, true)
			if err != nil {
				wb.log.WithField("file", rec.Name).WithError(err).Warn("failed to add image to workbook")
				rec.Status = batch.StatusAddImageError
				rec.Err = err
			} else if err := wb.fitRow(row, h); err != nil {
				wb.f.Close()
				return err
			}
		}

		err := wb.setCells(row, 2,
			rec.Name,
			rec.Dimensions(),
			rec.Format(),
			rec.Text,
			rec.Status,
		)
		if err != nil {
			wb.f.Close()
			return err
		}
	}
	return wb.save(path)
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
