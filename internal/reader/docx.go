package reader

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/diag"
)

// word/document.xml structure, reduced to body-level paragraphs and their
// text runs. Namespace prefixes are ignored on purpose; the decoder matches
// local element names.
type wordDocument struct {
	Body struct {
		Paragraphs []wordParagraph `xml:"p"`
	} `xml:"body"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Texts []wordText `xml:"t"`
}

type wordText struct {
	Content string `xml:",chardata"`
}

// DOCXReader extracts paragraph text from a Word document, one block per
// file, paragraphs joined in document order.
type DOCXReader struct {
	logger *slog.Logger
}

func NewDOCXReader(logger *slog.Logger) *DOCXReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DOCXReader{logger: logger}
}

func (r *DOCXReader) Read(_ context.Context, path string) ([]Block, []diag.Entry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open docx archive: %w", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, zf := range zr.File {
		if zf.Name == "word/document.xml" {
			docFile = zf
			break
		}
	}
	if docFile == nil {
		return nil, nil, errors.New("archive has no word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var doc wordDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("parse document.xml: %w", err)
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, run := range p.Runs {
			for _, t := range run.Texts {
				sb.WriteString(t.Content)
			}
		}
		lines = append(lines, sb.String())
	}

	name := filepath.Base(path)
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil, []diag.Entry{diag.Warnf(name, "document contains no paragraph text")}, nil
	}

	return []Block{{
		File:   name,
		Format: constants.WORD,
		Text:   text,
		Method: MethodDOCXText,
	}}, nil, nil
}
