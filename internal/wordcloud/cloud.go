package wordcloud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/psykhi/wordclouds"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ironsheep/ocr-batch/internal/imaging"
	"github.com/ironsheep/ocr-batch/internal/nlp"
)

// ErrNoWords is returned when there is nothing to draw.
var ErrNoWords = errors.New("no words to draw")

// Options controls the rendered cloud.
type Options struct {
	Width, Height int
	Background    color.Color

	// MaxWords caps how many of the most frequent words are drawn.
	MaxWords int

	MinFontSize int
	MaxFontSize int

	// Palette colors the words. Nil uses Palette(8).
	Palette []color.Color

	// FontFile is a TrueType font. Empty uses Go Regular.
	FontFile string
}

// DefaultOptions renders an 800x400 cloud on white.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      400,
		Background:  color.White,
		MaxWords:    200,
		MinFontSize: 10,
		MaxFontSize: 80,
	}
}

// normalize fills unset fields and keeps 1 <= MinFontSize <= MaxFontSize.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.Background == nil {
		o.Background = def.Background
	}
	if len(o.Palette) == 0 {
		o.Palette = Palette(8)
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = def.MinFontSize
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = o.MinFontSize
	}
	return o
}

// Cloud is a rendered word cloud.
type Cloud struct {
	Image image.Image

	// Words is how many words were handed to the layout.
	Words int
}

// Render draws the most frequent entries. Font size grows with count from
// MinFontSize to MaxFontSize.
func Render(entries []nlp.Entry, opts Options) (*Cloud, error) {
	if len(entries) == 0 {
		return nil, ErrNoWords
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid cloud size %dx%d", opts.Width, opts.Height)
	}
	opts = opts.normalize()
	if opts.MaxWords > 0 && len(entries) > opts.MaxWords {
		entries = entries[:opts.MaxWords]
	}

	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Key] += e.Count
	}

	fontFile := opts.FontFile
	if fontFile == "" {
		path, err := writeDefaultFont()
		if err != nil {
			return nil, err
		}
		defer os.Remove(path)
		fontFile = path
	}

	wc := wordclouds.NewWordcloud(counts,
		wordclouds.FontFile(fontFile),
		wordclouds.FontMinSize(opts.MinFontSize),
		wordclouds.FontMaxSize(opts.MaxFontSize),
		wordclouds.Colors(opts.Palette),
		wordclouds.BackgroundColor(opts.Background),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.RandomPlacement(false),
	)
	return &Cloud{Image: wc.Draw(), Words: len(counts)}, nil
}

// writeDefaultFont puts Go Regular in a temp file; the layout loads fonts
// by path.
func writeDefaultFont() (string, error) {
	f, err := os.CreateTemp("", "wordcloud-*.ttf")
	if err != nil {
		return "", fmt.Errorf("failed to create font file: %w", err)
	}
	if _, err := f.Write(goregular.TTF); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write font file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write font file: %w", err)
	}
	return f.Name(), nil
}

// SavePNG writes the cloud image to path.
func (c *Cloud) SavePNG(path string) error {
	return imaging.Save(c.Image, path)
}
