// Package extract orchestrates one extraction run: scan the document
// directory, read every supported file, and assemble the reference corpus.
// A run never aborts on a bad file; everything that goes wrong is reported
// through the diagnostic log.
package extract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/common"
	"github.com/ymorimoto/sekisan/internal/corpus"
	"github.com/ymorimoto/sekisan/internal/diag"
	"github.com/ymorimoto/sekisan/internal/reader"
)

// Progress receives a notification before each file is read.
type Progress func(file string, index, total int)

// Result is everything one run produces. FileCount counts files that
// yielded at least one text block.
type Result struct {
	RunID       string
	Corpus      corpus.Corpus
	Blocks      []reader.Block
	Diagnostics []diag.Entry
}

// Pipeline coordinates the readers and the corpus assembler. Files are
// processed sequentially in directory order; OCR and synthesis calls carry
// per-call cost, so there is no fan-out.
type Pipeline struct {
	Readers   reader.Readers
	Assembler corpus.Assembler
	Logger    *slog.Logger
	Progress  Progress
}

func New(readers reader.Readers, assembler corpus.Assembler, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Readers: readers, Assembler: assembler, Logger: logger}
}

// Run extracts every supported document directly under dir. A missing or
// empty directory is a zero-count result with a descriptive diagnostic,
// not an error: the caller may still synthesize from general knowledge.
func (p *Pipeline) Run(ctx context.Context, dir string) (Result, error) {
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	start := time.Now()

	var log diag.Log
	res := Result{RunID: runID}

	p.Logger.Info("extract.run.start", "run_id", runID, "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Add(diag.Errorf("", "cannot read document directory %s: %v", dir, err))
		p.Logger.Warn("extract.run.no_dir", "run_id", runID, "dir", dir, "error", err)
		res.Diagnostics = log.Entries()
		return res, nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if constants.AllowedExt(filepath.Ext(entry.Name())) {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		log.Add(diag.Warnf("", "no supported documents (%s) found in %s",
			strings.Join(constants.AllowedExtensions, ", "), dir))
	}

	var blocks []reader.Block
	for i, name := range files {
		if p.Progress != nil {
			p.Progress(name, i+1, len(files))
		}

		r, format := p.Readers.ForPath(name)
		if r == nil {
			// unreachable after the extension filter, but never fatal
			log.Add(diag.Warnf(name, "no reader for this file type"))
			continue
		}

		fileBlocks, fileDiags, err := r.Read(ctx, filepath.Join(dir, name))
		log.Add(fileDiags...)
		if err != nil {
			log.Add(diag.Errorf(name, "read failed: %v", err))
			p.Logger.Warn("extract.file.error", "run_id", runID, "file", name, "format", format, "error", err)
			continue
		}
		blocks = append(blocks, fileBlocks...)
		p.Logger.Info("extract.file.ok", "run_id", runID, "file", name, "format", format, "blocks", len(fileBlocks))
	}

	res.Blocks = blocks
	res.Corpus = p.Assembler.Assemble(blocks, &log)
	res.Diagnostics = log.Entries()

	p.Logger.Info("extract.run.ok",
		"run_id", runID,
		"files", res.Corpus.FileCount,
		"blocks", len(blocks),
		"chars", len(res.Corpus.Text),
		"truncated", res.Corpus.Truncated,
		"warnings", log.Count(diag.Warning),
		"errors", log.Count(diag.Error),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
