package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Resize scales an image to exactly width x height pixels, ignoring aspect
// ratio. This matches the fixed-size pictures the run and compare workbooks
// embed.
func Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Fit scales an image down so it fits within width x height while keeping its
// aspect ratio. Images that already fit are returned as an unscaled copy.
func Fit(img image.Image, width, height int) image.Image {
	return imaging.Fit(img, width, height, imaging.Lanczos)
}

// EncodePNG encodes an image as PNG bytes for embedding in a workbook.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes an image to path, choosing the encoder from the file extension
// (png, jpg, jpeg, gif, tif, tiff, bmp). The parent directory must exist.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveFiltered applies filter to img and saves the result as prefix+name in
// dir, returning the written path. The caller removes the file when done.
func SaveFiltered(img image.Image, filter Filter, dir, prefix, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	path := filepath.Join(dir, prefix+name)
	if err := Save(filter(img), path); err != nil {
		return "", err
	}
	return path, nil
}
