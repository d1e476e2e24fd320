package ocr

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/aws/aws-sdk-go/service/textract/textractiface"
)

func anchor(start, end int64) *documentaipb.Document_TextAnchor {
	return &documentaipb.Document_TextAnchor{
		TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: start, EndIndex: end}},
	}
}

func TestDocumentToResult(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "产品 CAS 50-00-0\n",
		Pages: []*documentaipb.Document_Page{{
			Dimension: &documentaipb.Document_Page_Dimension{Width: 200, Height: 100},
			Tokens: []*documentaipb.Document_Page_Token{
				{Layout: &documentaipb.Document_Page_Layout{
					TextAnchor: anchor(0, 3),
					Confidence: 0.75,
					BoundingPoly: &documentaipb.BoundingPoly{NormalizedVertices: []*documentaipb.NormalizedVertex{
						{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.2}, {X: 0.3, Y: 0.4}, {X: 0.1, Y: 0.4},
					}},
				}},
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(3, 7), Confidence: 0.5}},
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(7, 16), Confidence: 1}},
				// Out-of-range segments are clamped to the text.
				{Layout: &documentaipb.Document_Page_Layout{TextAnchor: anchor(16, 40), Confidence: 1}},
			},
		}},
	}

	result := documentToResult(doc)
	if got := result.Text(); got != "产品 CAS 50-00-0" {
		t.Errorf("Text() = %q", got)
	}
	if len(result.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(result.Elements))
	}
	if math.Abs(result.Elements[0].Confidence-0.75) > 1e-6 {
		t.Errorf("confidence = %v", result.Elements[0].Confidence)
	}
	if want := (Bounds{X1: 20, Y1: 20, X2: 60, Y2: 40}); result.Elements[0].Bounds != want {
		t.Errorf("bounds = %+v, want %+v", result.Elements[0].Bounds, want)
	}
	if result.Elements[1].Bounds != (Bounds{}) {
		t.Error("token without a polygon should have zero bounds")
	}
}

func TestDocumentToResult_Nil(t *testing.T) {
	if !documentToResult(nil).Empty() {
		t.Error("nil document should give an empty result")
	}
}

func TestDocumentAIOptions_ProcessorName(t *testing.T) {
	o := DocumentAIOptions{ProjectID: "p", Location: "eu", ProcessorID: "abc"}
	if got := o.processorName(); got != "projects/p/locations/eu/processors/abc" {
		t.Errorf("processorName() = %q", got)
	}
}

func wordBlock(text string, conf float64) *textract.Block {
	return &textract.Block{
		BlockType:  aws.String(textract.BlockTypeWord),
		Text:       aws.String(text),
		Confidence: aws.Float64(conf),
		Geometry: &textract.Geometry{BoundingBox: &textract.BoundingBox{
			Left: aws.Float64(0.5), Top: aws.Float64(0.25), Width: aws.Float64(0.25), Height: aws.Float64(0.5),
		}},
	}
}

func TestBlocksToResult(t *testing.T) {
	blocks := []*textract.Block{
		{BlockType: aws.String(textract.BlockTypePage)},
		{BlockType: aws.String(textract.BlockTypeLine), Text: aws.String("Brand Name Acme")},
		wordBlock("Brand", 99),
		wordBlock("Name", 45),
		wordBlock("  ", 10),
	}

	result := blocksToResult(blocks, 200, 100)
	if got := result.Text(); got != "Brand Name" {
		t.Errorf("Text() = %q", got)
	}
	if math.Abs(result.Elements[1].Confidence-0.45) > 1e-9 {
		t.Errorf("confidence = %v, want 0.45", result.Elements[1].Confidence)
	}
	if want := (Bounds{X1: 100, Y1: 25, X2: 150, Y2: 75}); result.Elements[0].Bounds != want {
		t.Errorf("bounds = %+v, want %+v", result.Elements[0].Bounds, want)
	}
}

// fakeTextract stubs the single call the engine makes.
type fakeTextract struct {
	textractiface.TextractAPI
	out *textract.DetectDocumentTextOutput
	err error
}

func (f *fakeTextract) DetectDocumentTextWithContext(_ aws.Context, in *textract.DetectDocumentTextInput, _ ...request.Option) (*textract.DetectDocumentTextOutput, error) {
	if len(in.Document.Bytes) == 0 {
		return nil, errors.New("empty document")
	}
	return f.out, f.err
}

func TestTextract_Recognize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0644); err != nil {
		t.Fatal(err)
	}

	engine := &Textract{api: &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []*textract.Block{wordBlock("Company", 88)},
	}}}

	result, err := engine.Recognize(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if result.Text() != "Company" {
		t.Errorf("Text() = %q", result.Text())
	}
	// Undecodable header: geometry cannot be scaled.
	if result.Elements[0].Bounds != (Bounds{}) {
		t.Errorf("bounds = %+v, want zero", result.Elements[0].Bounds)
	}
}

func TestTextract_RecognizeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("throttled")
	engine := &Textract{api: &fakeTextract{err: boom}}

	if _, err := engine.Recognize(context.Background(), path, nil); !errors.Is(err, boom) {
		t.Errorf("Recognize error = %v, want throttled", err)
	}
	if _, err := engine.Recognize(context.Background(), "/nonexistent.png", nil); err == nil {
		t.Error("Recognize should fail for a missing file")
	}
}
