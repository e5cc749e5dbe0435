// Package ocr recognizes text on PDF pages whose embedded text layer is
// missing or too thin to use. Pages are rasterized through pdftoppm and fed
// to one of two engines: a local tesseract pass or a vision-capable chat
// model. The engine is chosen once at startup, never per page.
package ocr

import (
	"context"
	"errors"
	"os/exec"

	"github.com/ymorimoto/sekisan/internal/diag"
)

// Extraction method tags recorded on blocks produced by the engines.
const (
	MethodLocal  = "pdf-ocr"    // pdftoppm + tesseract
	MethodVision = "vision-ocr" // pdftoppm + vision model transcription
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "jpn"
	DPI           int    // rasterization DPI, default 300
}

func (c Config) withDefaults() Config {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.TesseractLang == "" {
		c.TesseractLang = "jpn"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
	return c
}

// Transcriber turns a rendered page image (JPEG) into text. The vision
// engine is backed by whichever chat client the run is configured with.
type Transcriber interface {
	Transcribe(ctx context.Context, jpeg []byte) (string, error)
}

// Classify maps an engine failure to a diagnostic cause: a tool missing from
// PATH is an installation problem, everything else is an external call that
// may succeed on retry.
func Classify(err error) diag.Cause {
	if errors.Is(err, exec.ErrNotFound) {
		return diag.CauseMissingTool
	}
	return diag.CauseExternal
}
