package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// VisionEngine recognizes page text by sending the rendered image to a
// vision-capable chat model. Used when local OCR quality is not enough for
// scanned Japanese construction documents.
type VisionEngine struct {
	cfg    Config
	client Transcriber
	raster rasterizer
	logger *slog.Logger
}

func NewVisionEngine(cfg Config, client Transcriber, logger *slog.Logger) *VisionEngine {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &VisionEngine{
		cfg:    cfg,
		client: client,
		raster: rasterizer{runner: ExecRunner{}, bin: cfg.Pdftoppm, dpi: cfg.DPI, format: "jpeg", logger: logger},
		logger: logger,
	}
}

func (e *VisionEngine) Method() string { return MethodVision }

// RecognizePage rasterizes one page and asks the model to transcribe it.
func (e *VisionEngine) RecognizePage(ctx context.Context, pdfPath string, page int) (string, error) {
	img, cleanup, err := e.raster.render(ctx, pdfPath, page)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return "", err
	}

	jpeg, err := os.ReadFile(img)
	if err != nil {
		return "", fmt.Errorf("read rendered page %d: %w", page, err)
	}

	e.logger.Debug("ocr.vision.transcribe", "pdf", pdfPath, "page", page, "image_bytes", len(jpeg))
	text, err := e.client.Transcribe(ctx, jpeg)
	if err != nil {
		return "", fmt.Errorf("vision transcription page %d: %w", page, err)
	}
	return text, nil
}
