package ocr

import (
	"context"
	"math"
	"os/exec"
	"testing"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
 <head>
  <title></title>
 </head>
 <body>
  <div class='ocr_page' id='page_1' title='image "scan.png"; bbox 0 0 400 100; ppageno 0'>
   <div class='ocr_carea' id='block_1_1' title="bbox 10 10 300 40">
    <p class='ocr_par' id='par_1_1' lang='eng' title="bbox 10 10 300 40">
     <span class='ocr_line' id='line_1_1' title="bbox 10 10 300 40; baseline 0 -5; x_size 30">
      <span class='ocrx_word' id='word_1_1' title='bbox 10 10 90 40; x_wconf 96'>Model</span>
      <span class='ocrx_word' id='word_1_2' title='bbox 100 10 150 40; x_wconf 91'>No</span>
      <span class='ocrx_word' id='word_1_3' title='bbox 160 10 300 40; x_wconf 42'>50&amp;00-0</span>
      <span class='ocrx_word' id='word_1_4' title='bbox 305 10 310 40; x_wconf 10'> </span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>
`

func TestParseHOCR(t *testing.T) {
	result, err := parseHOCR([]byte(sampleHOCR))
	if err != nil {
		t.Fatalf("parseHOCR failed: %v", err)
	}

	if got := result.Text(); got != "Model No 50&00-0" {
		t.Errorf("Text() = %q", got)
	}

	want := []float64{0.96, 0.91, 0.42}
	if len(result.Elements) != len(want) {
		t.Fatalf("got %d elements, want %d", len(result.Elements), len(want))
	}
	for i, w := range want {
		if math.Abs(result.Elements[i].Confidence-w) > 1e-9 {
			t.Errorf("element %d confidence = %v, want %v", i, result.Elements[i].Confidence, w)
		}
	}
}

func TestParseHOCR_Invalid(t *testing.T) {
	if _, err := parseHOCR([]byte("<html><body><div>")); err == nil {
		t.Error("parseHOCR should fail for truncated markup")
	}
}

func TestWordConfidence(t *testing.T) {
	tests := []struct {
		title string
		want  float64
	}{
		{"bbox 1 2 3 4; x_wconf 87", 0.87},
		{"bbox 1 2 3 4; x_wconf 100", 1},
		{"bbox 1 2 3 4", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := wordConfidence(tt.title); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wordConfidence(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestNewTesseractCLI_MissingBinary(t *testing.T) {
	if _, err := NewTesseractCLI("/nonexistent/bin/tesseract", ""); err == nil {
		t.Error("NewTesseractCLI should fail for a missing binary")
	}
}

func TestTesseractCLI_RealText(t *testing.T) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("Tesseract not available")
	}
	engine, err := NewTesseractCLI("", "")
	if err != nil {
		t.Fatalf("NewTesseractCLI failed: %v", err)
	}

	imgPath := createImageWithText(t, "HELLO WORLD", 4)
	result, err := engine.Recognize(context.Background(), imgPath, []string{"eng"})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	t.Logf("Extracted text: %q", result.Text())
}
