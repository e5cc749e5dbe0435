// Package reader turns reference documents into text blocks. Each supported
// format has its own reader; PDFs additionally route image-only pages through
// the configured OCR engine.
package reader

import (
	"context"
	"path/filepath"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/diag"
)

// Extraction method tags for natively read text.
const (
	MethodPDFText  = "pdf-text"
	MethodDOCXText = "docx-text"
	MethodXLSXText = "xlsx-text"
)

// Block is the text extracted from one document, or one page/sheet of it.
type Block struct {
	File   string // display name of the source file
	Format string // constants.PDF | constants.WORD | constants.EXCEL
	Page   int    // 1-based page or sheet position; 0 for single-block sources
	Sheet  string // sheet name for workbook sources
	Text   string
	Method string // how the text was obtained
}

// Reader extracts the text blocks of a single document. A returned error
// means the whole file was unreadable; per-page and per-sheet problems are
// reported as diagnostics instead so the rest of the file survives.
type Reader interface {
	Read(ctx context.Context, path string) ([]Block, []diag.Entry, error)
}

// PageOCR recognizes the text of one PDF page. Implemented by the engines in
// the ocr package.
type PageOCR interface {
	RecognizePage(ctx context.Context, pdfPath string, page int) (string, error)
	Method() string
}

// Readers bundles one reader per supported format.
type Readers struct {
	PDF   Reader
	Word  Reader
	Excel Reader
}

// ForPath picks the reader for a path by extension. The second return is the
// format tag, empty when the extension is not supported.
func (r Readers) ForPath(path string) (Reader, string) {
	switch constants.MapExtToFormat(filepath.Ext(path)) {
	case constants.PDF:
		return r.PDF, constants.PDF
	case constants.WORD:
		return r.Word, constants.WORD
	case constants.EXCEL:
		return r.Excel, constants.EXCEL
	default:
		return nil, ""
	}
}
