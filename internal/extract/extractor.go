// Package extract turns attached files into text content tagged with a
// content category.
//
// Each file kind has an ordered list of strategies: a primary path that
// asks the inference capability for a rich understanding of the file, then
// deterministic fallbacks that always produce best-effort content. The
// fallback order is data, not control flow, so it can be tested without a
// network.
package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"

	"github.com/forgeworks/idea-forge/internal/llm"
	"github.com/forgeworks/idea-forge/internal/model"
)

// Source marks which extraction path produced a result.
type Source string

// Provenance markers.
const (
	SourceVision   Source = "vision"
	SourceFallback Source = "fallback"
	SourceNotFound Source = "not_found"
)

// Result is the extraction output for one file.
type Result struct {
	Content  string
	Category model.ContentCategory
	Source   Source
}

// Kind is the coarse file kind used for strategy dispatch.
type Kind int

// File kinds.
const (
	KindUnknown Kind = iota
	KindImage
	KindDocument
	KindSlides
	KindOffice
	KindVideo
	KindPlainText
)

// DetectKind maps a file extension to its kind.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp":
		return KindImage
	case ".pdf":
		return KindDocument
	case ".pptx":
		return KindSlides
	case ".docx":
		return KindOffice
	case ".mp4", ".mov", ".avi":
		return KindVideo
	case ".txt", ".md":
		return KindPlainText
	default:
		return KindUnknown
	}
}

// SupportedFile reports whether the extractor handles this file at all.
func SupportedFile(path string) bool {
	return DetectKind(path) != KindUnknown
}

// Config holds extractor tuning knobs.
type Config struct {
	// FrameInterval is the sampling interval for video frames.
	FrameInterval time.Duration
	// MaxFrames caps how many sampled frames are sent per video.
	MaxFrames int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 10 * time.Second,
		MaxFrames:     10,
	}
}

// Extractor extracts content from attached files.
type Extractor struct {
	client llm.Client
	logger *slog.Logger
	cfg    Config
}

// New creates a file extractor backed by the given inference client.
func New(client llm.Client, logger *slog.Logger, cfg Config) *Extractor {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultConfig().FrameInterval
	}
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = DefaultConfig().MaxFrames
	}
	return &Extractor{client: client, logger: logger, cfg: cfg}
}

// strategy is one extraction path for a file kind.
type strategy struct {
	run  func(ctx context.Context, path string) (Result, error)
	name string
}

// strategiesFor returns the ordered strategy list for a kind: primary
// first, then deterministic fallbacks.
func (e *Extractor) strategiesFor(kind Kind) []strategy {
	switch kind {
	case KindImage:
		return []strategy{
			{name: "vision", run: e.visionImage},
			{name: "image_stub", run: e.imageStub},
		}
	case KindDocument:
		return []strategy{
			{name: "vision", run: e.visionDocument},
			{name: "pdf_text", run: e.pdfText},
			{name: "file_stub", run: e.fileStub},
		}
	case KindSlides, KindOffice:
		return []strategy{
			{name: "vision", run: e.visionOffice},
			{name: "office_text", run: e.officeText},
			{name: "file_stub", run: e.fileStub},
		}
	case KindVideo:
		return []strategy{
			{name: "vision", run: e.visionVideo},
			{name: "video_probe", run: e.videoProbe},
			{name: "file_stub", run: e.fileStub},
		}
	default:
		return []strategy{
			{name: "plain_text", run: e.plainText},
			{name: "file_stub", run: e.fileStub},
		}
	}
}

// Extract produces a result for one file. It never returns an error: a
// missing file yields an explicitly tagged empty result, and strategy
// failures cascade to the next fallback.
func (e *Extractor) Extract(ctx context.Context, path string) Result {
	name := filepath.Base(path)

	if _, err := os.Stat(path); err != nil {
		e.logger.Error("file not found", "file", name)
		return Result{Content: "", Category: model.CategoryText, Source: SourceNotFound}
	}

	for _, s := range e.strategiesFor(DetectKind(path)) {
		result, err := s.run(ctx, path)
		if err == nil {
			e.logger.Debug("extraction complete",
				"file", name,
				"strategy", s.name,
				"category", result.Category,
				"content_length", len(result.Content))
			return result
		}
		e.logger.Warn("extraction strategy failed, trying next",
			"file", name,
			"strategy", s.name,
			"error", err)
	}

	return Result{
		Content:  fmt.Sprintf("Error extracting %s", name),
		Category: model.CategoryText,
		Source:   SourceFallback,
	}
}

// visionImage sends the image itself to the inference capability.
func (e *Extractor) visionImage(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read image: %w", err)
	}

	uri := dataURI(mimeForExt(filepath.Ext(path)), data)

	resp, err := e.client.GenerateStructured(ctx, llm.Request{
		Prompt: imageAnalysisPrompt,
		Images: []string{uri},
	})
	if err != nil {
		return Result{}, err
	}

	return resultFromResponse(resp, SourceVision)
}

// visionDocument renders the first pages of the PDF and sends them as
// vision inputs, so diagram- and screenshot-heavy documents are read
// visually. Without a page renderer on PATH it characterizes the embedded
// text instead.
func (e *Extractor) visionDocument(ctx context.Context, path string) (Result, error) {
	pages, err := renderPDFPages(ctx, path, maxPDFPages)
	if err != nil {
		e.logger.Warn("page rendering unavailable, analyzing embedded text",
			"file", filepath.Base(path), "error", err)
		text, textErr := extractPDFText(path)
		if textErr != nil {
			return Result{}, textErr
		}
		return e.visionOverText(ctx, text)
	}

	prompt := fmt.Sprintf(pdfPagesPrompt, len(pages), filepath.Base(path))

	resp, err := e.client.GenerateStructured(ctx, llm.Request{
		Prompt: prompt,
		Images: pages,
	})
	if err != nil {
		return Result{}, err
	}

	return resultFromResponse(resp, SourceVision)
}

// visionOffice extracts office-document text via docconv and asks the
// inference capability to characterize it.
func (e *Extractor) visionOffice(ctx context.Context, path string) (Result, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to convert document: %w", err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return Result{}, fmt.Errorf("no text content extracted from document")
	}
	return e.visionOverText(ctx, res.Body)
}

// visionOverText runs the document-analysis call over extracted text.
// The deterministic text is kept as the content; only the category
// judgment comes from the model.
func (e *Extractor) visionOverText(ctx context.Context, text string) (Result, error) {
	prompt := fmt.Sprintf(documentAnalysisPrompt, truncate(text, 4000))

	resp, err := e.client.GenerateStructured(ctx, llm.Request{Prompt: prompt})
	if err != nil {
		return Result{}, err
	}

	result, err := resultFromResponse(resp, SourceVision)
	if err != nil {
		return Result{}, err
	}

	result.Content = truncate(text, 2000)
	return result, nil
}

// visionVideo samples frames and sends them as a sequence. A video with
// no decodable frames yields a failure-tagged text result, not an error.
func (e *Extractor) visionVideo(ctx context.Context, path string) (Result, error) {
	frames, err := sampleFrames(ctx, path, e.cfg.FrameInterval, e.cfg.MaxFrames)
	if err != nil {
		return Result{}, err
	}

	if len(frames) == 0 {
		return Result{
			Content:  "Failed to extract frames from video",
			Category: model.CategoryText,
			Source:   SourceVision,
		}, nil
	}

	prompt := fmt.Sprintf(videoAnalysisPrompt, len(frames), filepath.Base(path))

	resp, err := e.client.GenerateStructured(ctx, llm.Request{
		Prompt: prompt,
		Images: frames,
	})
	if err != nil {
		return Result{}, err
	}

	return resultFromResponse(resp, SourceVision)
}

// pdfText is the deterministic PDF fallback: a raw text pull.
func (e *Extractor) pdfText(_ context.Context, path string) (Result, error) {
	text, err := extractPDFText(path)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: text, Category: model.CategoryText, Source: SourceFallback}, nil
}

// officeText is the deterministic DOCX/PPTX fallback.
func (e *Extractor) officeText(_ context.Context, path string) (Result, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to convert document: %w", err)
	}
	return Result{Content: res.Body, Category: model.CategoryText, Source: SourceFallback}, nil
}

// plainText reads the file as-is.
func (e *Extractor) plainText(_ context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: string(data), Category: model.CategoryText, Source: SourceFallback}, nil
}

// imageStub is the metadata-only image fallback.
func (e *Extractor) imageStub(_ context.Context, path string) (Result, error) {
	return Result{
		Content:  fmt.Sprintf("Image file: %s", filepath.Base(path)),
		Category: model.CategoryText,
		Source:   SourceFallback,
	}, nil
}

// fileStub is the last-resort metadata-only fallback.
func (e *Extractor) fileStub(_ context.Context, path string) (Result, error) {
	return Result{
		Content:  fmt.Sprintf("File: %s", filepath.Base(path)),
		Category: model.CategoryText,
		Source:   SourceFallback,
	}, nil
}

// extractPDFText pulls plain text from every page of a PDF.
func extractPDFText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var fullText strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}
		fullText.WriteString(text)
	}

	if fullText.Len() == 0 {
		return "", fmt.Errorf("no text content extracted from PDF")
	}

	return fullText.String(), nil
}

// resultFromResponse decodes a {content, content_type} inference response.
func resultFromResponse(resp string, source Source) (Result, error) {
	obj, err := llm.DecodeObject(resp)
	if err != nil {
		return Result{}, err
	}

	category := model.CategoryText
	if llm.String(obj, "content_type") == string(model.CategoryPrototype) {
		category = model.CategoryPrototype
	}

	return Result{
		Content:  llm.String(obj, "content"),
		Category: category,
		Source:   source,
	}, nil
}

func dataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}

// truncate clips s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
