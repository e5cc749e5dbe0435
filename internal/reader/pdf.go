package reader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/diag"
	"github.com/ymorimoto/sekisan/internal/ocr"
)

// DefaultPageTextThreshold is the minimum trimmed character count for a
// page's native text layer to be trusted. Below it the page is treated as a
// scan and routed to OCR. A policy constant, not a property of the format.
const DefaultPageTextThreshold = 50

// PageProgress receives page-level updates while a PDF is processed. OCR
// dominates the run time, so callers surface this incrementally.
type PageProgress func(file string, page, total int)

// PDFConfig tunes native text extraction and image-page routing.
type PDFConfig struct {
	Pdftotext         string // binary name or absolute path; if empty -> "pdftotext"
	PageTextThreshold int    // trimmed character minimum; if <= 0 -> DefaultPageTextThreshold
}

// PDFReader extracts the embedded text layer of each page and falls back to
// the configured OCR engine for pages that look like scans.
type PDFReader struct {
	cfg    PDFConfig
	runner ocr.Runner
	engine PageOCR // nil disables the fallback
	logger *slog.Logger

	// Progress, when set, is called once per page in order.
	Progress PageProgress
}

func NewPDFReader(cfg PDFConfig, engine PageOCR, logger *slog.Logger) *PDFReader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.PageTextThreshold <= 0 {
		cfg.PageTextThreshold = DefaultPageTextThreshold
	}
	return &PDFReader{cfg: cfg, runner: ocr.ExecRunner{}, engine: engine, logger: logger}
}

func (r *PDFReader) Read(ctx context.Context, path string) ([]Block, []diag.Entry, error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, _, err := r.runner.Run(ctx, r.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, nil, fmt.Errorf("pdftotext: %w", err)
	}

	pages := splitPages(string(out))
	name := filepath.Base(path)

	var blocks []Block
	var diags []diag.Entry
	for i, pageText := range pages {
		page := i + 1
		if r.Progress != nil {
			r.Progress(name, page, len(pages))
		}
		block := Block{File: name, Format: constants.PDF, Page: page, Text: pageText, Method: MethodPDFText}
		trimmed := strings.TrimSpace(pageText)
		if utf8.RuneCountInString(trimmed) < r.cfg.PageTextThreshold {
			block = r.recognize(ctx, path, name, page, block, &diags)
		}
		blocks = append(blocks, block)
	}
	return blocks, diags, nil
}

// recognize routes a likely-image page through OCR. On engine failure or an
// empty result it keeps whatever native text the page had, so one bad page
// never aborts the file.
func (r *PDFReader) recognize(ctx context.Context, path, name string, page int, native Block, diags *[]diag.Entry) Block {
	if r.engine == nil {
		e := diag.Warnf(name, "page below text threshold; no ocr engine configured")
		e.Page = page
		*diags = append(*diags, e)
		return native
	}

	r.logger.Info("reader.pdf.ocr", "file", name, "page", page, "method", r.engine.Method())
	text, err := r.engine.RecognizePage(ctx, path, page)
	if err != nil {
		e := diag.Errorf(name, "ocr failed: %v", err)
		e.Page = page
		e.Cause = ocr.Classify(err)
		*diags = append(*diags, e)
		return native
	}
	if strings.TrimSpace(text) == "" {
		e := diag.Warnf(name, "ocr produced no text")
		e.Page = page
		*diags = append(*diags, e)
		return native
	}

	e := diag.Infof(name, "page recognized via %s", r.engine.Method())
	e.Page = page
	*diags = append(*diags, e)

	native.Text = text
	native.Method = r.engine.Method()
	return native
}

// pdftotext separates pages with form feeds and emits a trailing one after
// the last page.
func splitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
