package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/imaging"
	"github.com/ironsheep/ocr-batch/internal/logging"
)

// Catalog statuses. StatusAddImageError is set by the workbook writer when
// the thumbnail cannot be embedded.
const (
	StatusOK            = "OK"
	StatusCorrupted     = "Corrupted"
	StatusAddImageError = "Error Adding Image"
)

// NA fills the metadata columns of corrupted images.
const NA = "NA"

// CatalogRecord describes one image of an inventory workbook.
type CatalogRecord struct {
	Path string
	Name string

	// Info is nil for corrupted images.
	Info *imaging.ImageInfo

	// Text is the trimmed OCR output, empty when OCR failed.
	Text   string
	Status string
	Err    error
}

// Dimensions returns "WxH", or NA for a corrupted image.
func (r CatalogRecord) Dimensions() string {
	if r.Info == nil {
		return NA
	}
	return r.Info.Dimensions()
}

// Format returns the decoded format name, or NA for a corrupted image.
func (r CatalogRecord) Format() string {
	if r.Info == nil {
		return NA
	}
	return r.Info.Format
}

// Catalog is the outcome of a Cataloger pass.
type Catalog struct {
	Dir         string
	Records     []CatalogRecord
	Elapsed     time.Duration
	Interrupted bool
}

// Cataloger builds an inventory of a directory: dimensions, format and OCR
// text per image.
type Cataloger struct {
	Reader Recognizer
	Cache  *imaging.ImageCache

	// Preprocess, when set, is applied to a temporary copy that is OCRed in
	// place of the original.
	Preprocess imaging.Filter

	Log      *logrus.Logger
	Progress ProgressFunc
}

// Run catalogs dir. A directory without supported images returns
// ErrNoImages so no empty workbook is written.
func (c *Cataloger) Run(ctx context.Context, dir string) (*Catalog, error) {
	start := time.Now()

	paths, err := ListImages(dir, CatalogExtensions)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoImages
	}

	tempDir := ""
	if c.Preprocess != nil {
		tempDir, err = os.MkdirTemp("", "ocr-batch-catalog-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)
	}

	cat := &Catalog{Dir: dir}
	bar := c.Progress.start(len(paths), "Processing Images")
	for _, path := range paths {
		if ctx.Err() != nil {
			cat.Interrupted = true
			break
		}
		cat.Records = append(cat.Records, c.process(ctx, path, tempDir))
		_ = bar.Add(1)
	}

	cat.Elapsed = time.Since(start)
	return cat, nil
}

func (c *Cataloger) process(ctx context.Context, path, tempDir string) CatalogRecord {
	cache := c.Cache
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	log := c.Log
	if log == nil {
		log = logging.Discard()
	}

	rec := CatalogRecord{Path: path, Name: filepath.Base(path)}
	defer cache.Evict(path)

	info, err := imaging.LoadImageInfo(cache, path)
	if err != nil {
		log.WithField("file", rec.Name).WithError(err).Warn("image is corrupted or cannot be opened")
		rec.Status = StatusCorrupted
		rec.Err = err
		return rec
	}
	rec.Info = info
	rec.Status = StatusOK

	ocrPath := path
	if c.Preprocess != nil {
		img, err := cache.Load(path)
		if err == nil {
			ocrPath, err = imaging.SaveFiltered(img, c.Preprocess, tempDir, "", rec.Name)
		}
		if err != nil {
			log.WithField("file", rec.Name).WithError(err).Warn("pre-processing failed, using original")
			ocrPath = path
		}
	}

	result, err := c.Reader.Read(ctx, ocrPath)
	if err != nil {
		log.WithField("file", rec.Name).WithError(err).Warn("cannot extract text from image")
		return rec
	}
	rec.Text = strings.TrimSpace(result.Text())
	log.WithField("file", rec.Name).Debug("processed image")
	return rec
}
