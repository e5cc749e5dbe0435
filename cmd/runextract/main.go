// Command runextract runs the document extraction pipeline only and prints
// the assembled corpus to stdout, for inspecting exactly what the drafting
// model would be given. No synthesis call is made; the vision OCR strategy
// still needs its provider key.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ymorimoto/sekisan/internal/common"
	"github.com/ymorimoto/sekisan/internal/corpus"
	"github.com/ymorimoto/sekisan/internal/extract"
	"github.com/ymorimoto/sekisan/internal/ocr"
	"github.com/ymorimoto/sekisan/internal/reader"
	"github.com/ymorimoto/sekisan/internal/synth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	switch len(os.Args) {
	case 1:
	case 2:
		cfg.Data.Dir = os.Args[1]
	default:
		logger.Error("usage", "cmd", "runextract [dir]")
		os.Exit(2)
	}
	if err := cfg.CheckDataDir(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ocrCfg := ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.Lang,
		DPI:           cfg.OCR.DPI,
	}
	var engine reader.PageOCR
	if cfg.OCR.Strategy == common.StrategyVision {
		client, err := synth.New(cfg, logger)
		if err != nil {
			logger.Error("vision strategy needs the provider api key", "error", err)
			os.Exit(1)
		}
		engine = ocr.NewVisionEngine(ocrCfg, client, logger)
	} else {
		engine = ocr.NewLocalEngine(ocrCfg, logger)
	}

	pdfReader := reader.NewPDFReader(reader.PDFConfig{
		Pdftotext:         cfg.OCR.Pdftotext,
		PageTextThreshold: cfg.Extract.PageTextThreshold,
	}, engine, logger)
	pdfReader.Progress = func(file string, page, total int) {
		fmt.Fprintf(os.Stderr, "  %s: page %d/%d\n", file, page, total)
	}

	pipeline := extract.New(reader.Readers{
		PDF:   pdfReader,
		Word:  reader.NewDOCXReader(logger),
		Excel: reader.NewXLSXReader(logger),
	}, corpus.Assembler{MaxChars: cfg.Extract.CorpusMaxChars}, logger)
	pipeline.Progress = func(file string, index, total int) {
		fmt.Fprintf(os.Stderr, "reading %s (%d/%d)\n", file, index, total)
	}

	res, err := pipeline.Run(context.Background(), cfg.Data.Dir)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	logger.Info("extraction OK",
		"files", res.Corpus.FileCount,
		"blocks", len(res.Blocks),
		"chars", len(res.Corpus.Text),
		"truncated", res.Corpus.Truncated,
	)
	fmt.Print(res.Corpus.Text)
}
