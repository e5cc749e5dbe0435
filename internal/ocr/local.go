package ocr

import (
	"context"
	"fmt"
	"log/slog"
)

// LocalEngine recognizes page text with a locally installed tesseract.
type LocalEngine struct {
	cfg    Config
	runner Runner
	raster rasterizer
	logger *slog.Logger
}

func NewLocalEngine(cfg Config, logger *slog.Logger) *LocalEngine {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	r := ExecRunner{}
	return &LocalEngine{
		cfg:    cfg,
		runner: r,
		raster: rasterizer{runner: r, bin: cfg.Pdftoppm, dpi: cfg.DPI, format: "png", logger: logger},
		logger: logger,
	}
}

func (e *LocalEngine) Method() string { return MethodLocal }

// RecognizePage rasterizes one page and runs tesseract over the image.
func (e *LocalEngine) RecognizePage(ctx context.Context, pdfPath string, page int) (string, error) {
	img, cleanup, err := e.raster.render(ctx, pdfPath, page)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return "", err
	}

	// tesseract <file> stdout -l <lang>
	out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", fmt.Errorf("tesseract page %d: %w", page, err)
	}
	return string(out), nil
}
