package ocr

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIOptions identifies a Google Document AI OCR processor.
type DocumentAIOptions struct {
	ProjectID   string
	Location    string
	ProcessorID string

	// CredentialsFile is a service account JSON file. Empty falls back to
	// GOOGLE_APPLICATION_CREDENTIALS and then application default
	// credentials.
	CredentialsFile string
}

// processorName builds the resource name of the processor.
func (o DocumentAIOptions) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", o.ProjectID, o.Location, o.ProcessorID)
}

// DocumentAI sends images to a Google Document AI OCR processor and maps the
// page tokens to elements.
type DocumentAI struct {
	client *documentai.DocumentProcessorClient
	opts   DocumentAIOptions
}

// NewDocumentAI creates a Document AI client against the regional endpoint.
func NewDocumentAI(ctx context.Context, opts DocumentAIOptions) (*DocumentAI, error) {
	if opts.ProjectID == "" || opts.ProcessorID == "" {
		return nil, fmt.Errorf("documentai engine needs a project and processor id")
	}
	if opts.Location == "" {
		opts.Location = "us"
	}

	clientOpts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", opts.Location)),
	}
	creds := opts.CredentialsFile
	if creds == "" {
		creds = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if creds != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(creds))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	return &DocumentAI{client: client, opts: opts}, nil
}

// Name implements Engine.
func (d *DocumentAI) Name() string { return EngineDocumentAI }

// Recognize implements Engine. Document AI detects languages itself, so
// languages is ignored.
func (d *DocumentAI) Recognize(ctx context.Context, path string, _ []string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	req := &documentaipb.ProcessRequest{
		Name: d.opts.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: http.DetectContentType(content),
			},
		},
		SkipHumanReview: true,
	}

	resp, err := d.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return documentToResult(resp.GetDocument()), nil
}

// Close implements Engine.
func (d *DocumentAI) Close() error {
	return d.client.Close()
}

// documentToResult maps every page token to an element. Bounds are scaled
// from normalized vertices using the page dimension.
func documentToResult(doc *documentaipb.Document) *Result {
	result := &Result{}
	if doc == nil {
		return result
	}

	for _, page := range doc.GetPages() {
		for _, token := range page.GetTokens() {
			layout := token.GetLayout()
			text := strings.TrimSpace(textFromLayout(layout, doc.GetText()))
			if text == "" {
				continue
			}
			result.Elements = append(result.Elements, Element{
				Text:       text,
				Confidence: float64(layout.GetConfidence()),
				Bounds:     layoutBounds(layout, page.GetDimension()),
			})
		}
	}
	return result
}

// textFromLayout extracts the text a layout's anchor segments point at.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	var sb strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start, end := int(seg.StartIndex), int(seg.EndIndex)
		if end > len(runes) {
			end = len(runes)
		}
		if start < 0 {
			start = 0
		}
		if start > end {
			start = end
		}
		sb.WriteString(string(runes[start:end]))
	}
	return sb.String()
}

func layoutBounds(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) Bounds {
	poly := layout.GetBoundingPoly()
	if poly == nil || dim == nil || len(poly.NormalizedVertices) < 4 {
		return Bounds{}
	}
	v := poly.NormalizedVertices
	return Bounds{
		X1: int(v[0].X*dim.Width + 0.5),
		Y1: int(v[0].Y*dim.Height + 0.5),
		X2: int(v[2].X*dim.Width + 0.5),
		Y2: int(v[2].Y*dim.Height + 0.5),
	}
}
