package ocr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownEngine is returned by NewEngine for names not in the registry.
var ErrUnknownEngine = errors.New("unknown OCR engine")

// Engine names accepted by NewEngine.
const (
	EngineTesseract    = "tesseract"
	EngineTesseractCLI = "tesseract-cli"
	EngineDocumentAI   = "documentai"
	EngineTextract     = "textract"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Element is one recognized word or text fragment.
type Element struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the engine's confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this element, when the engine
	// reports one. Zero otherwise.
	Bounds Bounds `json:"bounds"`
}

// Result holds the elements an engine recognized in one image, in reading
// order.
type Result struct {
	Elements []Element `json:"elements"`
}

// Empty reports whether no text was recognized.
func (r *Result) Empty() bool {
	return r == nil || len(r.Elements) == 0
}

// Text joins the element texts with single spaces.
func (r *Result) Text() string {
	if r.Empty() {
		return ""
	}
	parts := make([]string, len(r.Elements))
	for i, e := range r.Elements {
		parts[i] = e.Text
	}
	return strings.Join(parts, " ")
}

// Confidences returns the per-element confidence scores.
func (r *Result) Confidences() []float64 {
	if r.Empty() {
		return nil
	}
	confs := make([]float64, len(r.Elements))
	for i, e := range r.Elements {
		confs[i] = e.Confidence
	}
	return confs
}

// AverageConfidence is the arithmetic mean of the element confidences, or 0
// for an empty result.
func (r *Result) AverageConfidence() float64 {
	if r.Empty() {
		return 0
	}
	var sum float64
	for _, e := range r.Elements {
		sum += e.Confidence
	}
	return sum / float64(len(r.Elements))
}

// CountBelow returns how many elements have a confidence strictly below
// threshold.
func (r *Result) CountBelow(threshold float64) int {
	if r.Empty() {
		return 0
	}
	n := 0
	for _, e := range r.Elements {
		if e.Confidence < threshold {
			n++
		}
	}
	return n
}

// Engine recognizes text in image files.
//
// Implementations need not be safe for concurrent use; the batch runners
// call them from a single goroutine.
type Engine interface {
	// Name returns the registry name of the engine.
	Name() string

	// Recognize runs OCR on the image at path. languages are Tesseract
	// language codes such as "eng" or "chi_sim"; cloud engines that detect
	// language themselves ignore them.
	Recognize(ctx context.Context, path string, languages []string) (*Result, error)

	// Close releases any resources held by the engine.
	Close() error
}

// Options selects and configures an engine.
type Options struct {
	// Name is one of the Engine* constants.
	Name string

	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the library default.
	TessdataPrefix string

	// TesseractPath is the tesseract binary used by the tesseract-cli
	// engine.
	TesseractPath string

	// DocumentAI configures the documentai engine.
	DocumentAI DocumentAIOptions

	// AWSRegion is the region the textract engine calls.
	AWSRegion string
}

// EngineNames lists the accepted engine names in sorted order.
func EngineNames() []string {
	names := []string{EngineTesseract, EngineTesseractCLI, EngineDocumentAI, EngineTextract}
	sort.Strings(names)
	return names
}

// NewEngine constructs the engine named in opts.
func NewEngine(ctx context.Context, opts Options) (Engine, error) {
	switch opts.Name {
	case EngineTesseract:
		return NewTesseract(opts.TessdataPrefix)
	case EngineTesseractCLI:
		return NewTesseractCLI(opts.TesseractPath, opts.TessdataPrefix)
	case EngineDocumentAI:
		return NewDocumentAI(ctx, opts.DocumentAI)
	case EngineTextract:
		return NewTextract(opts.AWSRegion)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, opts.Name, EngineNames())
	}
}

// Reader runs an engine with a primary language set and retries with a
// fallback set when the first pass finds nothing. This is how mixed
// Simplified/Traditional Chinese scans are handled: the second pass only
// happens for images the first set could not read at all.
type Reader struct {
	Engine    Engine
	Languages []string
	Fallback  []string
}

// Read recognizes the image at path. An error from either pass is returned
// as is; an empty fallback set means no second pass.
func (r *Reader) Read(ctx context.Context, path string) (*Result, error) {
	result, err := r.Engine.Recognize(ctx, path, r.Languages)
	if err != nil {
		return nil, err
	}
	if !result.Empty() || len(r.Fallback) == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Engine.Recognize(ctx, path, r.Fallback)
}
