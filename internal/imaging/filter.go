package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"rescribe.xyz/preproc"
)

// ErrUnknownFilter is returned by LookupFilter for names not in the registry.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter transforms an image before a second OCR pass. Filters never modify
// their input.
type Filter func(img image.Image) image.Image

// Adaptive threshold parameters: an 11x11 neighbourhood mean minus 2.
const (
	thresholdBlock = 11
	thresholdC     = 2
)

// Sauvola parameters, in the range used for book scans.
const (
	sauvolaK      = 0.3
	sauvolaWindow = 19
)

var filters = map[string]Filter{
	"sharpen":   Sharpen,
	"kernel9":   SharpenKernel9,
	"unsharp":   UnsharpMask,
	"binarize":  Binarize,
	"threshold": AdaptiveThreshold,
	"denoise":   ThresholdDenoise,
	"enhance":   EdgeEnhance,
	"sauvola":   SauvolaBinarize,
}

// LookupFilter returns the registered filter with the given name.
func LookupFilter(name string) (Filter, error) {
	f, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFilter, name, FilterNames())
	}
	return f, nil
}

// FilterNames lists the registered filter names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sharpen applies the classic 3x3 sharpen kernel
//
//	-2 -2 -2
//	-2 32 -2
//	-2 -2 -2
//
// scaled by 1/16, per colour channel, keeping alpha.
func Sharpen(img image.Image) image.Image {
	k := &convolution.Kernel{
		Matrix: []float64{
			-0.125, -0.125, -0.125,
			-0.125, 2, -0.125,
			-0.125, -0.125, -0.125,
		},
		Width:  3,
		Height: 3,
	}
	return convolution.Convolve(img, k, &convolution.Options{KeepAlpha: true})
}

// SharpenKernel9 applies the stronger unscaled kernel
//
//	-1 -1 -1
//	-1  9 -1
//	-1 -1 -1
//
// with results clamped to the valid channel range.
func SharpenKernel9(img image.Image) image.Image {
	k := &convolution.Kernel{
		Matrix: []float64{
			-1, -1, -1,
			-1, 9, -1,
			-1, -1, -1,
		},
		Width:  3,
		Height: 3,
	}
	return convolution.Convolve(img, k, &convolution.Options{KeepAlpha: true})
}

// UnsharpMask sharpens with a Gaussian unsharp mask (sigma 1).
func UnsharpMask(img image.Image) image.Image {
	return imaging.Sharpen(img, 1.0)
}

// Binarize converts to grayscale and applies a global threshold at mid-gray.
func Binarize(img image.Image) image.Image {
	return segment.Threshold(img, 128)
}

// AdaptiveThreshold converts to grayscale and marks each pixel white when it
// is brighter than the mean of its 11x11 neighbourhood minus 2, black
// otherwise.
func AdaptiveThreshold(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	mean := blur.Box(gray, float64(thresholdBlock/2))

	bounds := gray.Bounds()
	origin := mean.Bounds().Min.Sub(bounds.Min)
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := int(gray.GrayAt(x, y).Y)
			m := int(mean.RGBAAt(x+origin.X, y+origin.Y).R)
			if v > m-thresholdC {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// SauvolaBinarize applies Sauvola's local binarization, which copes with
// uneven lighting better than a global threshold.
func SauvolaBinarize(img image.Image) image.Image {
	return preproc.Sauvola(effect.Grayscale(img), sauvolaK, sauvolaWindow)
}

// ThresholdDenoise applies AdaptiveThreshold followed by a 5x5 mean filter,
// which softens the speckle a hard threshold leaves behind.
func ThresholdDenoise(img image.Image) image.Image {
	return effect.Grayscale(blur.Box(AdaptiveThreshold(img), 2))
}

// EdgeEnhance denoises a grayscale copy with a Gaussian blur, adds its Sobel
// edge magnitude back onto it and stretches the result to the full 0-255
// range.
func EdgeEnhance(img image.Image) image.Image {
	denoised := blur.Gaussian(effect.Grayscale(img), 1.5)
	edges := effect.Sobel(denoised)
	return stretch(effect.Grayscale(blend.Add(denoised, edges)))
}

// stretch rescales intensities so the darkest pixel becomes 0 and the
// brightest 255. A flat image is returned unchanged.
func stretch(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	lo, hi := uint8(255), uint8(0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi <= lo {
		return gray
	}

	out := image.NewGray(bounds)
	scale := 255.0 / float64(hi-lo)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			out.SetGray(x, y, color.Gray{Y: uint8(float64(v-lo)*scale + 0.5)})
		}
	}
	return out
}
