package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/batch"
	"github.com/ironsheep/ocr-batch/internal/imaging"
	"github.com/ironsheep/ocr-batch/internal/report"
	"github.com/ironsheep/ocr-batch/internal/sheet"
	"github.com/ironsheep/ocr-batch/internal/spell"
)

const (
	dirQuestion      = "Enter the directory of your images: "
	workbookQuestion = "Enter the name of your Excel file (without extension): "
	invalidDir       = "Invalid directory. Please try again."
)

type RunCmd struct {
	Dir       string `arg:"-d,--dir" help:"image directory (asked for when empty)"`
	Output    string `arg:"-o,--output" help:"workbook name without extension"`
	Engine    string `arg:"-e,--engine" help:"tesseract, tesseract-cli, documentai or textract"`
	Overwrite bool   `arg:"--overwrite" help:"replace an existing workbook"`
	PDF       bool   `arg:"--pdf" help:"also write stats_report.pdf with a confidence chart"`
	Title     string `arg:"--title" help:"stats report title"`
}

func (c *RunCmd) execute(ctx context.Context, e *env) error {
	p := newLinePrompter()
	dir, prompted, err := imageDir(c.Dir, dirQuestion, invalidDir, p)
	if err != nil {
		return err
	}
	out, err := workbookPath(dir, c.Output, prompted, c.Overwrite, workbookQuestion, p)
	if err != nil {
		return err
	}

	checker, err := spell.NewChecker(e.cfg.Dictionary, e.cfg.CustomWords)
	if err != nil {
		return err
	}
	reader, err := newReader(ctx, e, c.Engine)
	if err != nil {
		return err
	}
	defer closeReader(e, reader)

	runner := batch.NewRunner(reader, checker, e.log)
	runner.ElementThreshold = e.cfg.ElementThreshold
	runner.AverageThreshold = e.cfg.AverageThreshold
	runner.Progress = progress

	run, err := runner.Run(ctx, dir)
	if err != nil {
		return err
	}
	warnInterrupted(e.log, run.Interrupted, len(run.Records))

	writer := sheetWriter(e)
	if err := writer.WriteRun(out, run); err != nil {
		return err
	}
	fmt.Printf("Data has been successfully exported to %s\n", out)

	reportPath, err := report.SaveText(dir, c.Title, run.Stats)
	if err != nil {
		return err
	}
	fmt.Printf("Stats report saved to %s\n", reportPath)

	if c.PDF {
		pdfPath := filepath.Join(dir, report.PDFFileName)
		if err := report.SavePDF(pdfPath, c.Title, run, e.cfg.AverageThreshold); err != nil {
			return err
		}
		fmt.Printf("PDF report saved to %s\n", pdfPath)
	}

	fmt.Printf("Total Images: %d, Failed Extractions: %d, Time Taken: %.2f seconds\n",
		run.Stats.TotalImages, run.Stats.FailedExtractions, run.Stats.Elapsed.Seconds())
	return nil
}

type CompareCmd struct {
	Dir       string `arg:"-d,--dir" help:"image directory (asked for when empty)"`
	Output    string `arg:"-o,--output" help:"workbook name without extension"`
	Engine    string `arg:"-e,--engine" help:"tesseract, tesseract-cli, documentai or textract"`
	Filter    string `arg:"-f,--filter" help:"pre-processing filter"`
	TempDir   string `arg:"--temp-dir" help:"directory for filtered copies (default: the image directory)"`
	KeepTemp  bool   `arg:"--keep-temp" help:"keep the filtered copies"`
	Overwrite bool   `arg:"--overwrite" help:"replace an existing workbook"`
}

func (c *CompareCmd) execute(ctx context.Context, e *env) error {
	if c.Filter != "" {
		e.cfg.Filter = c.Filter
	}
	filter, err := imaging.LookupFilter(e.cfg.Filter)
	if err != nil {
		return err
	}

	p := newLinePrompter()
	dir, prompted, err := imageDir(c.Dir, dirQuestion, invalidDir, p)
	if err != nil {
		return err
	}
	out, err := workbookPath(dir, c.Output, prompted, c.Overwrite, workbookQuestion, p)
	if err != nil {
		return err
	}

	checker, err := spell.NewChecker(e.cfg.Dictionary, e.cfg.CustomWords)
	if err != nil {
		return err
	}
	reader, err := newReader(ctx, e, c.Engine)
	if err != nil {
		return err
	}
	defer closeReader(e, reader)

	cache := imaging.NewImageCache()
	comparer := &batch.Comparer{
		Reader:     reader,
		Checker:    checker,
		Filter:     filter,
		Cache:      cache,
		TempDir:    c.TempDir,
		TempPrefix: e.cfg.TempPrefix,
		Log:        e.log,
		Progress:   progress,
	}

	run, err := comparer.Run(ctx, dir)
	if err != nil {
		return err
	}
	warnInterrupted(e.log, run.Interrupted, len(run.Comparisons))

	writer := sheetWriter(e)
	writer.Cache = cache
	werr := writer.WriteComparison(out, run)

	if !(c.KeepTemp || e.cfg.KeepTemp) {
		if err := run.Cleanup(); err != nil {
			e.log.WithError(err).Warn("failed to delete temporary files")
		}
	}
	if werr != nil {
		return werr
	}

	fmt.Printf("Data has been successfully exported to %s\n", out)
	fmt.Printf("Time taken: %.2f seconds\n", run.Elapsed.Seconds())
	return nil
}

type CatalogCmd struct {
	Dir        string `arg:"-d,--dir" help:"image directory (asked for when empty)"`
	Output     string `arg:"-o,--output" help:"workbook name without extension"`
	Engine     string `arg:"-e,--engine" help:"tesseract, tesseract-cli, documentai or textract"`
	Preprocess string `arg:"-p,--preprocess" help:"filter applied to a copy before OCR"`
	Overwrite  bool   `arg:"--overwrite" help:"replace an existing workbook"`
}

func (c *CatalogCmd) execute(ctx context.Context, e *env) error {
	var pre imaging.Filter
	if c.Preprocess != "" {
		var err error
		if pre, err = imaging.LookupFilter(c.Preprocess); err != nil {
			return err
		}
	}

	p := newLinePrompter()
	dir, prompted, err := imageDir(c.Dir,
		"Enter the path to the image directory: ",
		"The specified directory does not exist or is not accessible.", p)
	if err != nil {
		return err
	}
	out, err := workbookPath(dir, c.Output, prompted, c.Overwrite,
		"Enter the desired name for the Excel file (without extension): ", p)
	if err != nil {
		return err
	}

	reader, err := newReader(ctx, e, c.Engine)
	if err != nil {
		return err
	}
	defer closeReader(e, reader)

	cache := imaging.NewImageCache()
	cataloger := &batch.Cataloger{
		Reader:     reader,
		Cache:      cache,
		Preprocess: pre,
		Log:        e.log,
		Progress:   progress,
	}

	cat, err := cataloger.Run(ctx, dir)
	if errors.Is(err, batch.ErrNoImages) {
		fmt.Println("No images found in the directory.")
		return nil
	}
	if err != nil {
		return err
	}
	warnInterrupted(e.log, cat.Interrupted, len(cat.Records))

	writer := sheetWriter(e)
	writer.Cache = cache
	if err := writer.WriteCatalog(out, cat); err != nil {
		return err
	}
	fmt.Printf("Excel file created successfully: %s\n", filepath.Base(out))
	fmt.Println("Tool Complete -- See Excel File")
	return nil
}

func sheetWriter(e *env) *sheet.Writer {
	w := sheet.NewWriter(e.log)
	t := e.cfg.Thumbnail
	w.RunThumbnail = sheet.Size{Width: t.Run.Width, Height: t.Run.Height}
	w.CompareThumbnail = sheet.Size{Width: t.Compare.Width, Height: t.Compare.Height}
	w.CatalogThumbnail = sheet.Size{Width: t.Catalog.Width, Height: t.Catalog.Height}
	return w
}

func warnInterrupted(log *logrus.Logger, interrupted bool, done int) {
	if interrupted {
		log.WithField("processed", done).Warn("interrupted, writing partial results")
	}
}
