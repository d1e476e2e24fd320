package sheet

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ironsheep/ocr-batch/internal/imaging"
	"github.com/ironsheep/ocr-batch/internal/logging"
)

// SheetName is the worksheet every result workbook writes to.
const SheetName = "OCR Results"

// pointsPerPixel converts a picture height in pixels to a row height in
// points.
const pointsPerPixel = 0.75

type column struct {
	header string
	width  float64
}

// workbook wraps an excelize file with a single result sheet.
type workbook struct {
	f     *excelize.File
	cache *imaging.ImageCache
	log   *logrus.Logger
}

func newWorkbook(columns []column, cache *imaging.ImageCache, log *logrus.Logger) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	wb := &workbook{f: f, cache: cache, log: log}
	if wb.cache == nil {
		wb.cache = imaging.NewImageCache()
	}
	if wb.log == nil {
		wb.log = logging.Discard()
	}

	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
		headers[i] = c.header
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return wb, nil
}

// setCells writes values into row starting at column col (1-based).
func (wb *workbook) setCells(row, col int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := wb.f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// embed anchors a thumbnail of the image at path in cell. With fit set the
// thumbnail keeps its aspect ratio inside size; otherwise it is stretched to
// exactly size. It returns the thumbnail height in pixels.
func (wb *workbook) embed(cell, path string, size Size, fit bool) (int, error) {
	img, err := wb.cache.Load(path)
	if err != nil {
		return 0, err
	}
	defer wb.cache.Evict(path)

	var thumb image.Image
	if fit {
		thumb = imaging.Fit(img, size.Width, size.Height)
	} else {
		thumb = imaging.Resize(img, size.Width, size.Height)
	}
	data, err := imaging.EncodePNG(thumb)
	if err != nil {
		return 0, err
	}

	err = wb.f.AddPictureFromBytes(SheetName, cell, &excelize.Picture{
		Extension: ".png",
		File:      data,
		Format:    &excelize.GraphicOptions{AltText: filepath.Base(path)},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add picture: %w", err)
	}
	return thumb.Bounds().Dy(), nil
}

// fitRow sets the height of row to hold a picture of px pixels.
func (wb *workbook) fitRow(row, px int) error {
	if px <= 0 {
		return nil
	}
	return wb.f.SetRowHeight(SheetName, row, float64(px)*pointsPerPixel)
}

func (wb *workbook) save(path string) error {
	defer wb.f.Close()
	if err := wb.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filepath.Base(path), err)
	}
	return nil
}

func joinWords(words []string) string {
	return strings.Join(words, ", ")
}
