package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the in-process engine backed by libtesseract through
// gosseract. One client is reused across images.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract creates a gosseract client. A non-empty tessdataPrefix points
// Tesseract at a custom language data directory.
func NewTesseract(tessdataPrefix string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	return &Tesseract{client: client}, nil
}

// Name implements Engine.
func (t *Tesseract) Name() string { return EngineTesseract }

// Recognize performs word-level OCR on an image file.
//
// Words come from Tesseract's RIL_WORD iterator level; each carries its
// bounding box and a confidence converted from Tesseract's 0-100 scale to
// 0-1. Blank words are dropped.
func (t *Tesseract) Recognize(ctx context.Context, path string, languages []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetLanguage(languages...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := t.client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	elements := make([]Element, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		elements = append(elements, Element{
			Text:       word,
			Confidence: box.Confidence / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{Elements: elements}, nil
}

// Close releases the Tesseract client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
