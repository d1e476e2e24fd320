package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotDirectory is returned when the input path is missing or is not a
	// directory.
	ErrNotDirectory = errors.New("invalid directory")

	// ErrNoImages is returned by runners that refuse to produce an empty
	// workbook.
	ErrNoImages = errors.New("no images found in the directory")
)

// Supported file extensions, lowercase with the leading dot.
var (
	// ImageExtensions is the allow-list of the OCR and comparison runners.
	ImageExtensions = []string{".png", ".jpg", ".jpeg", ".tiff", ".bmp", ".gif"}

	// CatalogExtensions is the narrower allow-list of the catalog runner.
	CatalogExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
)

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotDirectory, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotDirectory, dir)
	}
	return nil
}

// ListImages returns the paths of regular files in dir whose lowercased
// extension is in exts, sorted by file name. Subdirectories are not
// searched.
func ListImages(dir string, exts []string) ([]string, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		allowed[strings.ToLower(e)] = true
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
