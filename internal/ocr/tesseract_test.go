package ocr

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createImageWithText renders text with basicfont, scales it up for better
// recognition and saves it as a PNG.
func createImageWithText(t *testing.T, text string, scale int) string {
	t.Helper()

	// basicfont.Face7x13 is 7 pixels wide, 13 pixels tall per character
	width := len(text)*7 + 40
	height := 40

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(small, 20, 25, text, color.Black)

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := small.At(x, y)
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "ocr-text-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return tmpFile.Name()
}

// newTesseractOrSkip returns an in-process engine or skips when Tesseract
// (or its language data) is not installed.
func newTesseractOrSkip(t *testing.T) *Tesseract {
	t.Helper()
	engine, err := NewTesseract("")
	if err != nil {
		t.Skip("Tesseract not available")
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func skipIfTesseractMissing(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "tesseract") ||
		strings.Contains(msg, "library") ||
		strings.Contains(msg, "language") {
		t.Skip("Tesseract not available")
	}
}

func TestTesseract_Name(t *testing.T) {
	engine := newTesseractOrSkip(t)
	if engine.Name() != EngineTesseract {
		t.Errorf("Name() = %q", engine.Name())
	}
}

func TestTesseract_RealText(t *testing.T) {
	engine := newTesseractOrSkip(t)
	imgPath := createImageWithText(t, "HELLO WORLD", 4)

	result, err := engine.Recognize(context.Background(), imgPath, []string{"eng"})
	skipIfTesseractMissing(t, err)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	t.Logf("Extracted text: %q", result.Text())
	for _, e := range result.Elements {
		if e.Confidence < 0 || e.Confidence > 1 {
			t.Errorf("confidence %f for %q outside [0,1]", e.Confidence, e.Text)
		}
		if strings.TrimSpace(e.Text) == "" {
			t.Error("blank words should be dropped")
		}
	}
}

func TestTesseract_BlankImage(t *testing.T) {
	engine := newTesseractOrSkip(t)

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	tmpFile, err := os.CreateTemp(t.TempDir(), "ocr-empty-*.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatal(err)
	}
	tmpFile.Close()

	result, err := engine.Recognize(context.Background(), tmpFile.Name(), []string{"eng"})
	skipIfTesseractMissing(t, err)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	t.Logf("Detected %d elements in blank image", len(result.Elements))
}

func TestTesseract_NonExistentFile(t *testing.T) {
	engine := newTesseractOrSkip(t)
	_, err := engine.Recognize(context.Background(), "/nonexistent/path/image.png", []string{"eng"})
	if err == nil {
		t.Error("Recognize should fail for non-existent file")
	}
}

func TestTesseract_CancelledContext(t *testing.T) {
	engine := newTesseractOrSkip(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Recognize(ctx, "unused.png", []string{"eng"}); err == nil {
		t.Error("Recognize should fail on a cancelled context")
	}
}
