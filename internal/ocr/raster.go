package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// rasterizer renders single PDF pages to images through pdftoppm. The local
// engine wants PNG for tesseract; the vision engine sends JPEG over the wire.
type rasterizer struct {
	runner Runner
	bin    string
	dpi    int
	format string // "png" or "jpeg"
	logger *slog.Logger
}

func (rz rasterizer) ext() string {
	if rz.format == "jpeg" {
		return ".jpg"
	}
	return ".png"
}

// render rasterizes one page (1-based) into a temp directory and returns the
// image path. Call cleanup() once the image is no longer needed.
func (rz rasterizer) render(ctx context.Context, pdfPath string, page int) (imgPath string, cleanup func(), err error) {
	tmpDir, err := os.MkdirTemp("", "sekisan-pp-*")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			rz.logger.Warn("failed to remove raster temp dir", "path", tmpDir, "error", rmErr)
		}
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f N -l N -r 300 -png <in.pdf> <tmp/page>
	p := strconv.Itoa(page)
	_, _, err = rz.runner.Run(ctx, rz.bin, "-f", p, "-l", p, "-r", strconv.Itoa(rz.dpi), "-"+rz.format, pdfPath, prefix)
	if err != nil {
		return "", cleanup, fmt.Errorf("pdftoppm page %d: %w", page, err)
	}

	// pdftoppm zero-pads the page suffix, so glob rather than guess it
	matches, _ := filepath.Glob(prefix + "-*" + rz.ext())
	if len(matches) == 0 {
		return "", cleanup, fmt.Errorf("pdftoppm rendered no image for page %d", page)
	}
	sort.Strings(matches)
	return matches[0], cleanup, nil
}
