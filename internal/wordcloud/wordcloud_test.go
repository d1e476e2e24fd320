package wordcloud

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ironsheep/ocr-batch/internal/nlp"
)

func TestFrequencies(t *testing.T) {
	got := Frequencies("The powder, the POWDER and the resin! 42 resin powder")
	want := []nlp.Entry{{Key: "powder", Count: 3}, {Key: "resin", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Frequencies = %v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	entries := []nlp.Entry{
		{Key: "powder", Count: 10},
		{Key: "resin", Count: 6},
		{Key: "solvent", Count: 3},
		{Key: "acid", Count: 1},
	}

	cloud, err := Render(entries, DefaultOptions())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b := cloud.Image.Bounds()
	if b.Dx() != 800 || b.Dy() != 400 {
		t.Errorf("size = %v, want 800x400", b)
	}
	if cloud.Words != len(entries) {
		t.Errorf("Words = %d, want %d", cloud.Words, len(entries))
	}

	// Corners stay background, and some words were drawn.
	white := color.RGBA{255, 255, 255, 255}
	if c := color.RGBAModel.Convert(cloud.Image.At(b.Min.X, b.Min.Y)).(color.RGBA); c != white {
		t.Errorf("corner = %v, want white", c)
	}
	inked := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(cloud.Image.At(x, y)).(color.RGBA) != white {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no words drawn")
	}
}

func TestRender_MaxWords(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxWords = 2
	entries := []nlp.Entry{{Key: "powder", Count: 3}, {Key: "resin", Count: 2}, {Key: "acid", Count: 1}}

	cloud, err := Render(entries, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if cloud.Words != 2 {
		t.Errorf("Words = %d, want 2", cloud.Words)
	}
}

func TestOptions_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantMin  int
		wantMax  int
	}{
		{"defaults kept", 10, 80, 10, 80},
		{"zero min", 0, 80, 10, 80},
		{"negative min", -5, 40, 10, 40},
		{"max below min", 12, 9, 12, 12},
		{"both zero", 0, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{MinFontSize: tt.min, MaxFontSize: tt.max}.normalize()
			if o.MinFontSize != tt.wantMin || o.MaxFontSize != tt.wantMax {
				t.Errorf("sizes = %d..%d, want %d..%d", o.MinFontSize, o.MaxFontSize, tt.wantMin, tt.wantMax)
			}
			if o.Background == nil || len(o.Palette) == 0 {
				t.Error("background and palette should be filled in")
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(nil, DefaultOptions()); !errors.Is(err, ErrNoWords) {
		t.Errorf("error = %v, want ErrNoWords", err)
	}
	if _, err := Render([]nlp.Entry{{Key: "a", Count: 1}}, Options{}); err == nil {
		t.Error("expected error for a zero-size cloud")
	}
}

func TestCloud_SavePNG(t *testing.T) {
	cloud, err := Render([]nlp.Entry{{Key: "resin", Count: 2}}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "cloud.png")
	if err := cloud.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}
}

func TestPalette(t *testing.T) {
	p := Palette(6)
	if len(p) != 6 {
		t.Fatalf("len = %d", len(p))
	}
	seen := map[color.RGBA]bool{}
	for _, c := range p {
		seen[color.RGBAModel.Convert(c).(color.RGBA)] = true
	}
	if len(seen) != 6 {
		t.Error("palette colors should be distinct")
	}
	if Palette(0) != nil {
		t.Error("Palette(0) should be nil")
	}
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#FFFFFF", "ffffff"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", s, err)
		}
		if got := color.RGBAModel.Convert(c).(color.RGBA); got != (color.RGBA{255, 255, 255, 255}) {
			t.Errorf("ParseColor(%q) = %v", s, got)
		}
	}
	if _, err := ParseColor("#GG0000"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestBarChart(t *testing.T) {
	entries := []nlp.Entry{{Key: "powder", Count: 5}, {Key: "resin", Count: 3}, {Key: "acid", Count: 1}}

	var buf bytes.Buffer
	if err := BarChart(&buf, "Top words", entries, 2); err != nil {
		t.Fatalf("BarChart failed: %v", err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("chart is not an image: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("width = %d, want 400", img.Bounds().Dx())
	}

	if err := BarChart(&bytes.Buffer{}, "", nil, 10); !errors.Is(err, ErrNoWords) {
		t.Errorf("error = %v, want ErrNoWords", err)
	}
}
