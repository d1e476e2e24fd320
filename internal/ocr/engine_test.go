package ocr

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// fakeEngine returns canned results per language set.
type fakeEngine struct {
	byLang map[string]*Result
	err    error
	calls  [][]string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(_ context.Context, _ string, languages []string) (*Result, error) {
	f.calls = append(f.calls, languages)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byLang[strings.Join(languages, "+")]; ok {
		return r, nil
	}
	return &Result{}, nil
}

func (f *fakeEngine) Close() error { return nil }

func words(pairs ...interface{}) *Result {
	r := &Result{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Elements = append(r.Elements, Element{Text: pairs[i].(string), Confidence: pairs[i+1].(float64)})
	}
	return r
}

func TestResult_Helpers(t *testing.T) {
	r := words("Hello", 0.9, "World", 0.4, "CAS", 0.5)

	if got := r.Text(); got != "Hello World CAS" {
		t.Errorf("Text() = %q", got)
	}
	if got := r.Confidences(); !reflect.DeepEqual(got, []float64{0.9, 0.4, 0.5}) {
		t.Errorf("Confidences() = %v", got)
	}
	if got := r.AverageConfidence(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("AverageConfidence() = %v, want 0.6", got)
	}
	if got := r.CountBelow(0.5); got != 1 {
		t.Errorf("CountBelow(0.5) = %d, want 1", got)
	}
	if r.Empty() {
		t.Error("Empty() should be false")
	}
}

func TestResult_EmptyAndNil(t *testing.T) {
	for _, r := range []*Result{nil, {}} {
		if !r.Empty() {
			t.Error("Empty() should be true")
		}
		if r.Text() != "" || r.AverageConfidence() != 0 || r.Confidences() != nil || r.CountBelow(1) != 0 {
			t.Error("empty result helpers should return zero values")
		}
	}
}

func TestReader_PrimaryHit(t *testing.T) {
	engine := &fakeEngine{byLang: map[string]*Result{
		"eng+chi_sim": words("你好", 0.8),
	}}
	reader := &Reader{Engine: engine, Languages: []string{"eng", "chi_sim"}, Fallback: []string{"eng", "chi_tra"}}

	result, err := reader.Read(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result.Text() != "你好" {
		t.Errorf("Text() = %q", result.Text())
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine called %d times, want 1", len(engine.calls))
	}
}

func TestReader_FallbackOnEmpty(t *testing.T) {
	engine := &fakeEngine{byLang: map[string]*Result{
		"eng+chi_tra": words("說明", 0.7),
	}}
	reader := &Reader{Engine: engine, Languages: []string{"eng", "chi_sim"}, Fallback: []string{"eng", "chi_tra"}}

	result, err := reader.Read(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result.Text() != "說明" {
		t.Errorf("Text() = %q, want fallback result", result.Text())
	}
	want := [][]string{{"eng", "chi_sim"}, {"eng", "chi_tra"}}
	if !reflect.DeepEqual(engine.calls, want) {
		t.Errorf("calls = %v, want %v", engine.calls, want)
	}
}

func TestReader_NoFallbackConfigured(t *testing.T) {
	engine := &fakeEngine{}
	reader := &Reader{Engine: engine, Languages: []string{"eng"}}

	result, err := reader.Read(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !result.Empty() {
		t.Error("expected empty result")
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine called %d times, want 1", len(engine.calls))
	}
}

func TestReader_Error(t *testing.T) {
	boom := errors.New("boom")
	reader := &Reader{Engine: &fakeEngine{err: boom}, Languages: []string{"eng"}, Fallback: []string{"deu"}}

	if _, err := reader.Read(context.Background(), "a.png"); !errors.Is(err, boom) {
		t.Errorf("Read error = %v, want boom", err)
	}
}

func TestNewEngine_Unknown(t *testing.T) {
	_, err := NewEngine(context.Background(), Options{Name: "easyocr"})
	if !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("NewEngine error = %v, want ErrUnknownEngine", err)
	}
}

func TestNewEngine_DocumentAIRequiresProcessor(t *testing.T) {
	_, err := NewEngine(context.Background(), Options{Name: EngineDocumentAI})
	if err == nil {
		t.Error("documentai engine without a processor should fail")
	}
}

func TestEngineNames(t *testing.T) {
	want := []string{"documentai", "tesseract", "tesseract-cli", "textract"}
	if got := EngineNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("EngineNames() = %v, want %v", got, want)
	}
}
