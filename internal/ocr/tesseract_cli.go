package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"rescribe.xyz/utils/pkg/hocr"
)

var wconfRe = regexp.MustCompile(`x_wconf\s+([0-9.]+)`)

// TesseractCLI runs an external tesseract binary with hOCR output and parses
// the word spans. It needs no cgo and works with whichever Tesseract build is
// on PATH.
type TesseractCLI struct {
	path           string
	tessdataPrefix string
}

// NewTesseractCLI checks that the binary can be found. An empty path means
// "tesseract".
func NewTesseractCLI(path, tessdataPrefix string) (*TesseractCLI, error) {
	if path == "" {
		path = "tesseract"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find tesseract binary: %w", err)
	}
	return &TesseractCLI{path: resolved, tessdataPrefix: tessdataPrefix}, nil
}

// Name implements Engine.
func (t *TesseractCLI) Name() string { return EngineTesseractCLI }

// Recognize implements Engine.
func (t *TesseractCLI) Recognize(ctx context.Context, path string, languages []string) (*Result, error) {
	args := []string{path, "stdout"}
	if len(languages) > 0 {
		args = append(args, "-l", strings.Join(languages, "+"))
	}
	if t.tessdataPrefix != "" {
		args = append(args, "--tessdata-dir", t.tessdataPrefix)
	}
	args = append(args, "hocr")

	cmd := exec.CommandContext(ctx, t.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("failed to run tesseract: %w", err)
	}

	return parseHOCR(out)
}

// Close implements Engine.
func (t *TesseractCLI) Close() error { return nil }

// parseHOCR converts ocrx_word spans into elements. Words without an
// x_wconf property get confidence 0.
func parseHOCR(data []byte) (*Result, error) {
	h, err := hocr.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var elements []Element
	for _, line := range h.Lines {
		for _, w := range line.Words {
			text := strings.TrimSpace(html.UnescapeString(w.Text))
			if text == "" {
				continue
			}
			e := Element{Text: text, Confidence: wordConfidence(w.Title)}
			if coords, err := hocr.BoxCoords(w.Title); err == nil {
				e.Bounds = Bounds{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
			}
			elements = append(elements, e)
		}
	}
	return &Result{Elements: elements}, nil
}

// wordConfidence reads x_wconf (0-100) from an hOCR title attribute.
func wordConfidence(title string) float64 {
	m := wconfRe.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	conf, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return conf / 100.0
}
