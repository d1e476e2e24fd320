package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ocr-batch/internal/imaging"
	"github.com/ironsheep/ocr-batch/internal/logging"
	"github.com/ironsheep/ocr-batch/internal/spell"
)

// DefaultTempPrefix names filtered copies: scan.png becomes
// sharpened_scan.png.
const DefaultTempPrefix = "sharpened_"

// Variant is the OCR outcome for one version of an image.
type Variant struct {
	// Path is the image the text came from. Empty for a filtered variant
	// whose filtering or OCR failed, so no picture is embedded for it.
	Path string

	Text          string
	AvgConfidence float64
	WordCount     int
	Misspelled    []string
	Err           error
}

// Comparison pairs the OCR of an original image with the OCR of its
// filtered copy.
type Comparison struct {
	Name     string
	Original Variant
	Filtered Variant

	// Added are tokens found only after filtering; Removed are tokens lost
	// by filtering. Both are sorted, and both stay empty when either
	// variant failed.
	Added   []string
	Removed []string
}

// ComparisonRun is the outcome of a Comparer pass.
type ComparisonRun struct {
	Dir         string
	Comparisons []Comparison
	Elapsed     time.Duration
	Interrupted bool

	// TempFiles are the filtered copies written during the run.
	TempFiles []string
}

// Cleanup deletes the filtered copies. Every file is attempted; the
// failures are returned joined.
func (r *ComparisonRun) Cleanup() error {
	var errs []error
	for _, path := range r.TempFiles {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to delete temporary file %s: %w", filepath.Base(path), err))
		}
	}
	r.TempFiles = nil
	return errors.Join(errs...)
}

// Comparer measures what a pre-processing filter does to OCR output.
type Comparer struct {
	Reader  Recognizer
	Checker SpellChecker

	// Filter is applied to each copy. Nil means imaging.Sharpen.
	Filter imaging.Filter
	Cache  *imaging.ImageCache

	// TempDir receives the filtered copies. Empty uses the input directory.
	TempDir string

	// TempPrefix is prepended to filtered copy names. Files in the input
	// directory that already carry it are skipped.
	TempPrefix string

	Log      *logrus.Logger
	Progress ProgressFunc
}

// Run compares every supported image in dir. The filtered copies stay on
// disk until Cleanup so a workbook can embed them.
func (c *Comparer) Run(ctx context.Context, dir string) (*ComparisonRun, error) {
	start := time.Now()

	paths, err := ListImages(dir, ImageExtensions)
	if err != nil {
		return nil, err
	}

	prefix := c.TempPrefix
	if prefix == "" {
		prefix = DefaultTempPrefix
	}
	paths = withoutPrefix(paths, prefix)

	tempDir := c.TempDir
	if tempDir == "" {
		tempDir = dir
	}
	cache := c.Cache
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	log := c.Log
	if log == nil {
		log = logging.Discard()
	}

	run := &ComparisonRun{Dir: dir}
	bar := c.Progress.start(len(paths), "Processing Images")

	for _, path := range paths {
		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		cmp := Comparison{Name: filepath.Base(path)}
		cmp.Original = c.variant(ctx, path)

		filteredPath, err := c.saveFiltered(cache, path, tempDir, prefix)
		if filteredPath != "" {
			run.TempFiles = append(run.TempFiles, filteredPath)
		}
		if err == nil {
			cmp.Filtered = c.variant(ctx, filteredPath)
			err = cmp.Filtered.Err
		}
		if err != nil {
			cmp.Filtered = Variant{Text: TextFilterError, Err: err}
		}
		cache.Evict(path)

		if ctx.Err() != nil {
			run.Interrupted = true
			break
		}

		if cmp.Original.Err != nil {
			log.WithField("file", cmp.Name).WithError(cmp.Original.Err).Error("failed to extract text")
		}
		if cmp.Filtered.Err != nil {
			log.WithField("file", cmp.Name).WithError(cmp.Filtered.Err).Error("failed to process filtered image")
		}

		if cmp.Original.Err == nil && cmp.Filtered.Err == nil {
			cmp.Added, cmp.Removed = WordDiff(tokens(cmp.Original), tokens(cmp.Filtered))
		}
		run.Comparisons = append(run.Comparisons, cmp)
		_ = bar.Add(1)
	}

	run.Elapsed = time.Since(start)
	return run, nil
}

func (c *Comparer) saveFiltered(cache *imaging.ImageCache, path, dir, prefix string) (string, error) {
	img, err := cache.Load(path)
	if err != nil {
		return "", err
	}
	filter := c.Filter
	if filter == nil {
		filter = imaging.Sharpen
	}
	return imaging.SaveFiltered(img, filter, dir, prefix, filepath.Base(path))
}

func (c *Comparer) variant(ctx context.Context, path string) Variant {
	v := Variant{Path: path}

	result, err := c.Reader.Read(ctx, path)
	switch {
	case err != nil:
		v.Text = TextError
		v.Err = err
	case result.Empty():
		v.Text = TextNoText
	default:
		v.Text = result.Text()
		v.AvgConfidence = result.AverageConfidence()
		v.WordCount = len(spell.Tokenize(v.Text))
		v.Misspelled = misspelled(c.Checker, v.Text)
	}
	return v
}

// tokens returns the words of a variant that produced text. "No text found"
// contributes nothing.
func tokens(v Variant) []string {
	if v.WordCount == 0 {
		return nil
	}
	return spell.Tokenize(v.Text)
}

// WordDiff returns the distinct tokens only in filtered (added) and only in
// original (removed), each sorted.
func WordDiff(original, filtered []string) (added, removed []string) {
	inOriginal := make(map[string]bool, len(original))
	for _, w := range original {
		inOriginal[w] = true
	}
	inFiltered := make(map[string]bool, len(filtered))
	for _, w := range filtered {
		inFiltered[w] = true
	}

	for w := range inFiltered {
		if !inOriginal[w] {
			added = append(added, w)
		}
	}
	for w := range inOriginal {
		if !inFiltered[w] {
			removed = append(removed, w)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

func withoutPrefix(paths []string, prefix string) []string {
	kept := paths[:0]
	for _, p := range paths {
		if !strings.HasPrefix(filepath.Base(p), prefix) {
			kept = append(kept, p)
		}
	}
	return kept
}
