package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/corpus"
	"github.com/ymorimoto/sekisan/internal/diag"
	"github.com/ymorimoto/sekisan/internal/reader"
)

// stubReader returns canned blocks stamped with the requested file name, so
// the orchestration can be tested without real documents or external tools.
type stubReader struct {
	format string
	text   string
	diags  []diag.Entry
	err    error
	calls  []string
}

func (s *stubReader) Read(_ context.Context, path string) ([]reader.Block, []diag.Entry, error) {
	name := filepath.Base(path)
	s.calls = append(s.calls, name)
	if s.err != nil {
		return nil, s.diags, s.err
	}
	return []reader.Block{{File: name, Format: s.format, Page: 1, Text: s.text}}, s.diags, nil
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
}

func newTestPipeline(pdf, word, excel *stubReader) *Pipeline {
	return New(reader.Readers{PDF: pdf, Word: word, Excel: excel}, corpus.Assembler{}, nil)
}

func TestRun_MissingDirectory(t *testing.T) {
	p := newTestPipeline(&stubReader{}, &stubReader{}, &stubReader{})

	res, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Corpus.FileCount)
	assert.Empty(t, res.Blocks)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, diag.Error, res.Diagnostics[0].Severity)
	assert.Contains(t, res.Diagnostics[0].Message, "cannot read document directory")
}

func TestRun_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt") // unsupported, must be ignored

	p := newTestPipeline(&stubReader{}, &stubReader{}, &stubReader{})
	res, err := p.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Corpus.FileCount)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, diag.Warning, res.Diagnostics[0].Severity)
	assert.Contains(t, res.Diagnostics[0].Message, "no supported documents")
	assert.Contains(t, res.Diagnostics[0].Message, "pdf, docx, xlsx")
}

func TestRun_ReadsFilesInDirectoryOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "keisan.xlsx")
	touch(t, dir, "kouji.pdf")
	touch(t, dir, "shiyo.docx")

	pdf := &stubReader{format: constants.PDF, text: "設計延長 2.4km"}
	word := &stubReader{format: constants.WORD, text: "仕様書本文"}
	excel := &stubReader{format: constants.EXCEL, text: "| 工種 | 単価 |"}
	p := newTestPipeline(pdf, word, excel)

	var seen []string
	p.Progress = func(file string, index, total int) {
		seen = append(seen, fmt.Sprintf("%s %d/%d", file, index, total))
	}

	res, err := p.Run(context.Background(), dir)
	require.NoError(t, err)

	// os.ReadDir yields lexical order.
	assert.Equal(t, []string{"keisan.xlsx 1/3", "kouji.pdf 2/3", "shiyo.docx 3/3"}, seen)
	assert.Equal(t, []string{"kouji.pdf"}, pdf.calls)
	assert.Equal(t, []string{"shiyo.docx"}, word.calls)
	assert.Equal(t, []string{"keisan.xlsx"}, excel.calls)

	assert.Equal(t, 3, res.Corpus.FileCount)
	assert.Len(t, res.Blocks, 3)
	assert.NotEmpty(t, res.RunID)

	keisan := "--- file: keisan.xlsx (Excel) ---"
	kouji := "--- file: kouji.pdf (PDF) ---"
	shiyo := "--- file: shiyo.docx (Word) ---"
	assert.Contains(t, res.Corpus.Text, keisan)
	assert.Contains(t, res.Corpus.Text, kouji)
	assert.Contains(t, res.Corpus.Text, shiyo)
	assert.Less(t, strings.Index(res.Corpus.Text, keisan), strings.Index(res.Corpus.Text, kouji))
	assert.Less(t, strings.Index(res.Corpus.Text, kouji), strings.Index(res.Corpus.Text, shiyo))
}

func TestRun_ContinuesPastFailingFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "broken.pdf")
	touch(t, dir, "tanka.xlsx")

	pdf := &stubReader{format: constants.PDF, err: fmt.Errorf("pdftotext: exit status 1")}
	excel := &stubReader{format: constants.EXCEL, text: "| 主任技師 | 66900 |"}
	p := newTestPipeline(pdf, &stubReader{}, excel)

	res, err := p.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Corpus.FileCount)
	assert.Contains(t, res.Corpus.Text, "| 主任技師 | 66900 |")

	var found bool
	for _, d := range res.Diagnostics {
		if d.Severity == diag.Error && d.File == "broken.pdf" {
			found = true
			assert.Contains(t, d.Message, "read failed")
		}
	}
	assert.True(t, found, "failing file must leave an error diagnostic")
}

func TestRun_CollectsReaderDiagnostics(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zumen.pdf")

	pdf := &stubReader{
		format: constants.PDF,
		text:   "図面注記",
		diags:  []diag.Entry{diag.Warnf("zumen.pdf", "page 2: recognized text is empty; keeping native text")},
	}
	p := newTestPipeline(pdf, &stubReader{}, &stubReader{})

	res, err := p.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "zumen.pdf", res.Diagnostics[0].File)
}
