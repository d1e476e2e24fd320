package batch

import (
	"context"
	"time"

	"github.com/ironsheep/ocr-batch/internal/ocr"
)

// Verification labels written to the status column.
const (
	StatusVerified      = "Verified"
	StatusLowConfidence = "Low Confidence"
	StatusNoText        = "No Text"
	StatusFailed        = "Failed"
)

// Sentinel texts written in place of OCR output.
const (
	TextNoText      = "No text found"
	TextError       = "Error in OCR"
	TextFilterError = "Error during sharpening"
)

// Recognizer reads the text of one image. *ocr.Reader implements it.
type Recognizer interface {
	Read(ctx context.Context, path string) (*ocr.Result, error)
}

// SpellChecker returns the distinct unknown tokens. *spell.Checker
// implements it.
type SpellChecker interface {
	Unknown(tokens []string) []string
}

// Progress is advanced once per image. *progressbar.ProgressBar implements
// it.
type Progress interface {
	Add(n int) error
}

// ProgressFunc starts a progress indicator for total items.
type ProgressFunc func(total int, description string) Progress

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

func (f ProgressFunc) start(total int, description string) Progress {
	if f == nil {
		return noProgress{}
	}
	return f(total, description)
}

// Record is the outcome of OCR on one image.
type Record struct {
	Path string
	Name string

	// Text is the joined element texts, TextNoText or TextError.
	Text string

	Confidences   []float64
	AvgConfidence float64

	// Status is one of the Status* labels, optionally followed by
	// " | N Spell Errors".
	Status string

	Misspelled    []string
	Elements      int
	LowConfidence int

	// Err is set when Status is StatusFailed.
	Err error
}

// Stats aggregates a batch. Percentages are computed on demand and are
// zero when their denominator is zero.
type Stats struct {
	TotalImages           int
	ImagesWithText        int
	ImagesWithoutText     int
	FailedExtractions     int
	LowConfidenceElements int
	SpellErrors           int
	TotalElements         int
	Elapsed               time.Duration
}

func (s *Stats) add(r Record) {
	s.TotalImages++
	switch r.Status {
	case StatusFailed:
		s.FailedExtractions++
	case StatusNoText:
		s.ImagesWithoutText++
	default:
		s.ImagesWithText++
		s.TotalElements += r.Elements
		s.LowConfidenceElements += r.LowConfidence
		s.SpellErrors += len(r.Misspelled)
	}
}

// Percent returns n as a percentage of d, or 0 when d is 0.
func Percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// TextRate is the share of images with text.
func (s Stats) TextRate() float64 { return Percent(s.ImagesWithText, s.TotalImages) }

// NoTextRate is the share of images without text.
func (s Stats) NoTextRate() float64 { return Percent(s.ImagesWithoutText, s.TotalImages) }

// FailureRate is the share of images whose extraction failed.
func (s Stats) FailureRate() float64 { return Percent(s.FailedExtractions, s.TotalImages) }

// LowConfidenceRate is the share of extracted elements below the element
// threshold.
func (s Stats) LowConfidenceRate() float64 {
	return Percent(s.LowConfidenceElements, s.TotalElements)
}

// SpellErrorRate is spell errors relative to extracted elements.
func (s Stats) SpellErrorRate() float64 { return Percent(s.SpellErrors, s.TotalElements) }
