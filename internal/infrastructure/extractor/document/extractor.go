package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
)

// Recognizer turns a scanned image into raw text. Implemented by the
// Tesseract HTTP client.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, mediaType string) (string, error)
}

var supportedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Extractor produces ordered per-page text blocks from an uploaded DDT file.
// PDF pages are read natively, images go through OCR as a single page.
type Extractor struct {
	ocr    Recognizer
	logger *slog.Logger
}

func NewExtractor(ocr Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{ocr: ocr, logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, file []byte, mediaType string) ([]string, error) {
	mt := normalizeMediaType(mediaType)
	if !supportedMediaTypes[mt] {
		return nil, domain.WrapError(domain.ErrUnsupportedMedia, "extract text",
			fmt.Errorf("media type %q", mediaType))
	}

	if mt == "application/pdf" {
		return e.extractPDF(file)
	}
	return e.extractImage(ctx, file, mt)
}

func (e *Extractor) extractPDF(file []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(file), int64(len(file)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "open pdf", err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page must not sink the rest of the document.
			e.logger.Warn("pdf_page_unreadable", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	if allBlank(pages) {
		// Text layer missing or empty. Fall back to one whole-document entry
		// so the caller sees a single page with no recognizable data instead
		// of a hard failure.
		return []string{""}, nil
	}
	return pages, nil
}

func (e *Extractor) extractImage(ctx context.Context, file []byte, mediaType string) ([]string, error) {
	if e.ocr == nil {
		return nil, domain.WrapError(domain.ErrExtraction, "extract image",
			fmt.Errorf("no OCR backend configured"))
	}
	text, err := e.ocr.Recognize(ctx, file, mediaType)
	if err != nil {
		return nil, domain.WrapError(domain.ErrExtraction, "recognize image", err)
	}
	return []string{text}, nil
}

func normalizeMediaType(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

func allBlank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}
