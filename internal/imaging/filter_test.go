package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// stripes returns a white image with a black vertical bar in the middle.
func stripes(width, height int) *image.RGBA {
	img := solidImage(width, height, color.White)
	for y := 0; y < height; y++ {
		for x := width/2 - 2; x < width/2+2; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func grayAt(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestLookupFilter(t *testing.T) {
	for _, name := range FilterNames() {
		f, err := LookupFilter(name)
		if err != nil {
			t.Errorf("LookupFilter(%q) failed: %v", name, err)
		}
		if f == nil {
			t.Errorf("LookupFilter(%q) returned nil", name)
		}
	}

	_, err := LookupFilter("emboss")
	if !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("LookupFilter(emboss) error = %v, want ErrUnknownFilter", err)
	}
}

func TestFilterNames_Sorted(t *testing.T) {
	names := FilterNames()
	if len(names) != len(filters) {
		t.Fatalf("got %d names, want %d", len(names), len(filters))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestFilters_PreserveSize(t *testing.T) {
	src := stripes(40, 30)

	for _, name := range FilterNames() {
		t.Run(name, func(t *testing.T) {
			f, _ := LookupFilter(name)
			out := f(src)
			if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 30 {
				t.Errorf("%s changed size to %v", name, out.Bounds())
			}
		})
	}
}

func TestFilters_DoNotModifyInput(t *testing.T) {
	src := stripes(20, 20)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	for _, name := range FilterNames() {
		f, _ := LookupFilter(name)
		f(src)
	}

	for i := range before {
		if before[i] != src.Pix[i] {
			t.Fatalf("input modified at byte %d", i)
		}
	}
}

func TestSharpen_FlatImageUnchanged(t *testing.T) {
	// Sharpen kernels sum to 1, so a flat interior stays flat.
	src := solidImage(10, 10, color.RGBA{100, 100, 100, 255})

	for _, f := range []Filter{Sharpen, SharpenKernel9} {
		out := f(src)
		if v := grayAt(out, 5, 5); v < 98 || v > 102 {
			t.Errorf("flat interior changed to %d", v)
		}
	}
}

func TestSharpenKernel9_IncreasesEdgeContrast(t *testing.T) {
	src := solidImage(10, 10, color.RGBA{200, 200, 200, 255})
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			src.Set(x, y, color.RGBA{100, 100, 100, 255})
		}
	}

	out := SharpenKernel9(src)
	// The light side of the edge gets lighter, the dark side darker.
	if grayAt(out, 4, 5) <= 200 {
		t.Errorf("light edge pixel = %d, want > 200", grayAt(out, 4, 5))
	}
	if grayAt(out, 5, 5) >= 100 {
		t.Errorf("dark edge pixel = %d, want < 100", grayAt(out, 5, 5))
	}
}

func TestBinarize_OnlyBlackAndWhite(t *testing.T) {
	src := solidImage(4, 1, color.Black)
	src.Set(1, 0, color.RGBA{50, 50, 50, 255})
	src.Set(2, 0, color.RGBA{200, 200, 200, 255})
	src.Set(3, 0, color.White)

	out := Binarize(src)
	want := []uint8{0, 0, 255, 255}
	for x, w := range want {
		if got := grayAt(out, x, 0); got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestAdaptiveThreshold(t *testing.T) {
	out := AdaptiveThreshold(stripes(40, 40))

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if v := grayAt(out, x, y); v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
	if grayAt(out, 20, 20) != 0 {
		t.Error("dark bar should stay black")
	}
	if grayAt(out, 2, 20) != 255 {
		t.Error("flat white background should be white")
	}
}

func TestSauvolaBinarize(t *testing.T) {
	out := SauvolaBinarize(stripes(40, 40))

	if grayAt(out, 20, 20) != 0 {
		t.Error("dark bar should stay black")
	}
	if grayAt(out, 2, 2) != 255 {
		t.Error("flat white background should be white")
	}
}

func TestEdgeEnhance_StretchesRange(t *testing.T) {
	out := EdgeEnhance(stripes(40, 40))

	lo, hi := uint8(255), uint8(0)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := grayAt(out, x, y)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo != 0 || hi != 255 {
		t.Errorf("range = [%d,%d], want [0,255]", lo, hi)
	}
}

func TestStretch_FlatImage(t *testing.T) {
	flat := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range flat.Pix {
		flat.Pix[i] = 42
	}
	if out := stretch(flat); out.GrayAt(1, 1).Y != 42 {
		t.Errorf("flat image changed to %d", out.GrayAt(1, 1).Y)
	}
}
