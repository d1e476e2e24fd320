package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Textract sends images to Amazon Textract's synchronous text detection and
// keeps the WORD blocks.
type Textract struct {
	api textractiface.TextractAPI
}

// NewTextract opens an AWS session for region. Credentials come from the
// usual SDK chain (environment, shared config, instance role).
func NewTextract(region string) (*Textract, error) {
	if region == "" {
		region = "us-east-1"
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up aws session: %w", err)
	}
	return &Textract{api: textract.New(sess)}, nil
}

// Name implements Engine.
func (t *Textract) Name() string { return EngineTextract }

// Recognize implements Engine. Textract detects languages itself, so
// languages is ignored.
func (t *Textract) Recognize(ctx context.Context, path string, _ []string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	out, err := t.api.DetectDocumentTextWithContext(ctx, &textract.DetectDocumentTextInput{
		Document: &textract.Document{Bytes: content},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect document text: %w", err)
	}

	// Geometry is relative to the page; an undecodable header leaves bounds zero.
	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(content)); err == nil {
		width, height = cfg.Width, cfg.Height
	}
	return blocksToResult(out.Blocks, width, height), nil
}

// Close implements Engine.
func (t *Textract) Close() error { return nil }

// blocksToResult keeps WORD blocks in response order. Bounding boxes are
// relative to the page and are scaled by width and height.
func blocksToResult(blocks []*textract.Block, width, height int) *Result {
	result := &Result{}
	for _, b := range blocks {
		if aws.StringValue(b.BlockType) != textract.BlockTypeWord {
			continue
		}
		text := strings.TrimSpace(aws.StringValue(b.Text))
		if text == "" {
			continue
		}
		e := Element{
			Text:       text,
			Confidence: aws.Float64Value(b.Confidence) / 100.0,
		}
		if b.Geometry != nil && b.Geometry.BoundingBox != nil {
			box := b.Geometry.BoundingBox
			left := aws.Float64Value(box.Left) * float64(width)
			top := aws.Float64Value(box.Top) * float64(height)
			e.Bounds = Bounds{
				X1: int(left + 0.5),
				Y1: int(top + 0.5),
				X2: int(left + aws.Float64Value(box.Width)*float64(width) + 0.5),
				Y2: int(top + aws.Float64Value(box.Height)*float64(height) + 0.5),
			}
		}
		result.Elements = append(result.Elements, e)
	}
	return result
}
