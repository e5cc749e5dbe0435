// Package corpus assembles extracted blocks into the single reference text
// fed to the drafting model.
package corpus

import (
	"fmt"
	"strings"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/diag"
	"github.com/ymorimoto/sekisan/internal/reader"
)

// TruncationMarker is appended whenever the corpus is cut at the budget. The
// cut is never silent; a warning diagnostic accompanies it.
const TruncationMarker = "\n...(truncated)..."

// DefaultMaxChars is the corpus character budget when none is configured.
const DefaultMaxChars = 100000

// Corpus is the assembled reference text for one run.
type Corpus struct {
	Text      string
	FileCount int
	Truncated bool
}

// Assembler concatenates blocks in discovery order, labels each source file,
// and enforces the character budget. Characters are counted as runes so the
// budget means the same thing for Japanese and Latin text.
type Assembler struct {
	MaxChars int // if <= 0 -> DefaultMaxChars
}

func (a Assembler) Assemble(blocks []reader.Block, log *diag.Log) Corpus {
	maxChars := a.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var b strings.Builder
	files := make(map[string]struct{})
	prevFile := ""
	for _, blk := range blocks {
		if blk.File != prevFile {
			fmt.Fprintf(&b, "\n\n--- file: %s (%s) ---\n", blk.File, formatLabel(blk.Format))
			prevFile = blk.File
		}
		files[blk.File] = struct{}{}
		if blk.Sheet != "" {
			b.WriteString("Sheet: ")
			b.WriteString(blk.Sheet)
			b.WriteByte('\n')
		}
		b.WriteString(blk.Text)
		b.WriteByte('\n')
	}

	text := b.String()
	truncated := false
	if runes := []rune(text); len(runes) > maxChars {
		text = string(runes[:maxChars]) + TruncationMarker
		truncated = true
		if log != nil {
			log.Add(diag.Warnf("", "corpus exceeds %d characters; truncated", maxChars))
		}
	}

	return Corpus{Text: text, FileCount: len(files), Truncated: truncated}
}

// formatLabel renders a format tag the way the separator lines spell it.
func formatLabel(format string) string {
	switch format {
	case constants.PDF:
		return "PDF"
	case constants.WORD:
		return "Word"
	case constants.EXCEL:
		return "Excel"
	default:
		return format
	}
}
