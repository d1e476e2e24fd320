package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/logging"
	"github.com/ironsheep/ocr-batch/internal/nlp"
	"github.com/ironsheep/ocr-batch/internal/spell"
)

// Default confidence thresholds.
const (
	DefaultElementThreshold = 0.5
	DefaultAverageThreshold = 0.6
)

// Run is the outcome of a Runner pass over a directory.
type Run struct {
	Dir     string
	Records []Record
	Stats   Stats

	// Interrupted is set when the context was cancelled before every image
	// was processed. Records holds the images finished before that.
	Interrupted bool
}

// Runner OCRs every image in a directory, labels each result and
// accumulates batch statistics.
type Runner struct {
	Reader Recognizer

	// Checker flags misspelled words in the Latin part of the text. Nil
	// disables spell checking.
	Checker SpellChecker

	// ElementThreshold marks a single element as low confidence;
	// AverageThreshold decides between Verified and Low Confidence.
	ElementThreshold float64
	AverageThreshold float64

	Log      *logrus.Logger
	Progress ProgressFunc
}

// NewRunner returns a runner with the default thresholds.
func NewRunner(reader Recognizer, checker SpellChecker, log *logrus.Logger) *Runner {
	return &Runner{
		Reader:           reader,
		Checker:          checker,
		ElementThreshold: DefaultElementThreshold,
		AverageThreshold: DefaultAverageThreshold,
		Log:              log,
	}
}

// Run processes the supported images in dir in file-name order, producing
// exactly one record per image. Per-image failures are recorded, logged and
// never stop the batch.
func (r *Runner) Run(ctx context.Context, dir string) (*Run, error) {
	start := time.Now()

	paths, err := ListImages(dir, ImageExtensions)
	if err != nil {
		return nil, err
	}

	log := r.logger()
	run := &Run{Dir: dir, Records: make([]Record, 0, len(paths))}
	bar := r.Progress.start(len(paths), "Processing Images")

	for _, path := range paths {
		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		rec := r.Process(ctx, path)
		if rec.Err != nil && ctx.Err() != nil {
			// Cancelled mid-image; not a real OCR failure.
			run.Interrupted = true
			break
		}

		run.Records = append(run.Records, rec)
		run.Stats.add(rec)
		_ = bar.Add(1)

		if rec.Err != nil {
			log.WithField("file", rec.Name).WithError(rec.Err).Error("failed to extract text")
		} else {
			log.WithFields(logrus.Fields{
				"file":       rec.Name,
				"status":     rec.Status,
				"elements":   rec.Elements,
				"confidence": fmt.Sprintf("%.2f", rec.AvgConfidence),
			}).Debug("processed image")
		}
	}

	run.Stats.Elapsed = time.Since(start)
	return run, nil
}

// Process OCRs a single image and labels the result.
func (r *Runner) Process(ctx context.Context, path string) Record {
	rec := Record{Path: path, Name: filepath.Base(path)}

	result, err := r.Reader.Read(ctx, path)
	if err != nil {
		rec.Text = TextError
		rec.Status = StatusFailed
		rec.Err = err
		return rec
	}

	if result.Empty() {
		rec.Text = TextNoText
		rec.Status = StatusNoText
		return rec
	}

	rec.Text = result.Text()
	rec.Confidences = result.Confidences()
	rec.AvgConfidence = result.AverageConfidence()
	rec.Elements = len(result.Elements)
	rec.LowConfidence = result.CountBelow(r.ElementThreshold)

	rec.Status = StatusVerified
	if rec.AvgConfidence < r.AverageThreshold {
		rec.Status = StatusLowConfidence
	}

	rec.Misspelled = misspelled(r.Checker, rec.Text)
	if n := len(rec.Misspelled); n > 0 {
		rec.Status += fmt.Sprintf(" | %d Spell Errors", n)
	}
	return rec
}

func (r *Runner) logger() *logrus.Logger {
	if r.Log == nil {
		return logging.Discard()
	}
	return r.Log
}

// misspelled checks only the Latin part of text; Chinese runs are not
// tokenized for the English dictionary.
func misspelled(checker SpellChecker, text string) []string {
	if checker == nil {
		return nil
	}
	_, latin := nlp.SplitLanguages(text)
	return checker.Unknown(spell.Tokenize(latin))
}
