// Command sekisan drafts a construction-consulting cost estimate: it reads
// the reference documents, assembles the corpus, optionally computes a
// deterministic cost breakdown from a line-items file, and asks the
// configured model for the narrative draft. The draft goes to stdout (or
// -out); logs, progress, and diagnostics go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ymorimoto/sekisan/constants"
	"github.com/ymorimoto/sekisan/internal/common"
	"github.com/ymorimoto/sekisan/internal/corpus"
	"github.com/ymorimoto/sekisan/internal/estimate"
	"github.com/ymorimoto/sekisan/internal/extract"
	"github.com/ymorimoto/sekisan/internal/ocr"
	"github.com/ymorimoto/sekisan/internal/reader"
	"github.com/ymorimoto/sekisan/internal/synth"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		project  = flag.String("project", "", "project name (required)")
		location = flag.String("location", "", "project location (required)")
		work     = flag.String("work", "", "work description text")
		workFile = flag.String("work-file", "", "file holding the work description (alternative to -work)")
		dir      = flag.String("dir", "", "reference document directory (overrides config)")
		items    = flag.String("items", "", "line-items JSON file for the deterministic breakdown")
		interim  = flag.Int("interim", -1, "add standard meeting allocations for N interim meetings")
		out      = flag.String("out", "", "write the draft to this file instead of stdout")
	)
	flag.Parse()

	if *project == "" || *location == "" {
		printError("Error: -project and -location are required\n")
		os.Exit(1)
	}
	workText := *work
	if workText == "" && *workFile != "" {
		data, err := os.ReadFile(*workFile)
		if err != nil {
			printError("Error: read -work-file: %v\n", err)
			os.Exit(1)
		}
		workText = string(data)
	}
	if workText == "" {
		printError("Error: a work description is required (-work or -work-file)\n")
		os.Exit(1)
	}

	// The draft itself is the stdout payload, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Data.Dir = *dir
	}
	// Credentials and the document directory are checked before any file I/O.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if err := cfg.CheckDataDir(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	logger.Info("data directory ok", "dir", cfg.Data.Dir, "files", countSupportedFiles(cfg.Data.Dir))

	// Optional deterministic breakdown from line items.
	var lineItems []estimate.LineItem
	if *items != "" {
		data, err := os.ReadFile(*items)
		if err != nil {
			logger.Error("read line items", "path", *items, "error", err)
			os.Exit(1)
		}
		lineItems, err = estimate.ParseItems(data)
		if err != nil {
			logger.Error("invalid line items", "path", *items, "error", err)
			os.Exit(1)
		}
	}
	if *interim >= 0 {
		lineItems = append(lineItems, estimate.MeetingItems(*interim)...)
	}
	breakdown := ""
	if len(lineItems) > 0 {
		result, err := estimate.Compute(lineItems, estimate.FY2025)
		if err != nil {
			logger.Error("compute estimate", "error", err)
			os.Exit(1)
		}
		breakdown = estimate.FormatBreakdown(lineItems, estimate.FY2025, result)
	}

	synthClient, err := synth.New(cfg, logger)
	if err != nil {
		logger.Error("init llm client", "error", err)
		os.Exit(1)
	}
	logger.Info("llm client initialized", "provider", cfg.LLM.Provider, "strategy", cfg.OCR.Strategy)

	pipeline := buildPipeline(cfg, synthClient, logger)
	ctx := context.Background()

	res, err := pipeline.Run(ctx, cfg.Data.Dir)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	// The full diagnostic log is always shown, never summarized away.
	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	fmt.Fprintf(os.Stderr, "reference files processed: %d (blocks: %d)\n",
		res.Corpus.FileCount, len(res.Blocks))
	if res.Corpus.FileCount == 0 {
		fmt.Fprintln(os.Stderr, "warning: no reference data found; drafting from general knowledge only")
	}

	draft, err := synthClient.Synthesize(ctx, synth.Request{
		ProjectName: *project,
		Location:    *location,
		WorkItems:   workText,
		Corpus:      res.Corpus.Text,
		FileCount:   res.Corpus.FileCount,
		Breakdown:   breakdown,
	})
	if err != nil {
		logger.Error("synthesis failed", "error", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(draft), 0644); err != nil {
			logger.Error("write output file", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("draft written", "path", *out, "bytes", len(draft))
		return
	}
	fmt.Println(draft)
}

// countSupportedFiles reports how many documents the run will pick up. The
// directory already passed CheckDataDir, so a read error just counts as zero.
func countSupportedFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && constants.AllowedExt(filepath.Ext(e.Name())) {
			n++
		}
	}
	return n
}

// buildPipeline wires readers and the OCR engine for the configured strategy.
func buildPipeline(cfg *common.Config, transcriber ocr.Transcriber, logger *slog.Logger) *extract.Pipeline {
	ocrCfg := ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.Lang,
		DPI:           cfg.OCR.DPI,
	}
	var engine reader.PageOCR
	switch cfg.OCR.Strategy {
	case common.StrategyVision:
		engine = ocr.NewVisionEngine(ocrCfg, transcriber, logger)
	default:
		engine = ocr.NewLocalEngine(ocrCfg, logger)
	}

	pdfReader := reader.NewPDFReader(reader.PDFConfig{
		Pdftotext:         cfg.OCR.Pdftotext,
		PageTextThreshold: cfg.Extract.PageTextThreshold,
	}, engine, logger)
	pdfReader.Progress = func(file string, page, total int) {
		fmt.Fprintf(os.Stderr, "  %s: page %d/%d\n", file, page, total)
	}

	readers := reader.Readers{
		PDF:   pdfReader,
		Word:  reader.NewDOCXReader(logger),
		Excel: reader.NewXLSXReader(logger),
	}

	pipeline := extract.New(readers, corpus.Assembler{MaxChars: cfg.Extract.CorpusMaxChars}, logger)
	pipeline.Progress = func(file string, index, total int) {
		fmt.Fprintf(os.Stderr, "reading %s (%d/%d)\n", file, index, total)
	}
	return pipeline
}
