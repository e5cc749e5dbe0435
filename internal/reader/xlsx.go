package reader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/diag"
)

// XLSXReader renders every sheet of a workbook as a pipe table, one block per
// sheet. excelize hands back missing cells as empty strings, so gaps stay
// blank in the corpus instead of leaking null literals.
type XLSXReader struct {
	logger *slog.Logger
}

func NewXLSXReader(logger *slog.Logger) *XLSXReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXReader{logger: logger}
}

func (r *XLSXReader) Read(_ context.Context, path string) ([]Block, []diag.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Warn("close workbook", "path", path, "error", cerr)
		}
	}()

	name := filepath.Base(path)
	var blocks []Block
	var diags []diag.Entry
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			e := diag.Warnf(name, "sheet %q unreadable: %v", sheet, err)
			e.Page = i + 1
			diags = append(diags, e)
			continue
		}
		text := renderTable(rows)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{
			File:   name,
			Format: constants.EXCEL,
			Page:   i + 1,
			Sheet:  sheet,
			Text:   text,
			Method: MethodXLSXText,
		})
	}
	if len(blocks) == 0 {
		diags = append(diags, diag.Warnf(name, "workbook contains no cell text"))
	}
	return blocks, diags, nil
}

// renderTable lays rows out as a markdown-style pipe table so column
// boundaries survive into the corpus. Returns "" for sheets without any
// cell text.
func renderTable(rows [][]string) string {
	width := 0
	hasText := false
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				hasText = true
			}
		}
	}
	if !hasText {
		return ""
	}

	var b strings.Builder
	for i, row := range rows {
		cells := make([]string, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
		if i == 0 {
			b.WriteString(strings.Repeat("|---", width))
			b.WriteString("|\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
