package ocr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymorimoto/sekisan/internal/diag"
)

// stubRunner fakes the external tools: the pdftoppm call drops an image
// where the rasterizer expects it, the tesseract call returns canned text.
type stubRunner struct {
	calls        [][]string
	tesseractOut string
	imageBytes   []byte
	failTool     string
	failErr      error
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == r.failTool {
		return nil, []byte("stub failure"), r.failErr
	}
	switch name {
	case "pdftoppm":
		ext := ".png"
		for _, a := range args {
			if a == "-jpeg" {
				ext = ".jpg"
			}
		}
		prefix := args[len(args)-1]
		img := r.imageBytes
		if img == nil {
			img = []byte("img")
		}
		if err := os.WriteFile(prefix+"-1"+ext, img, 0o644); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	case "tesseract":
		return []byte(r.tesseractOut), nil, nil
	}
	return nil, nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalEngine_RecognizePage(t *testing.T) {
	e := NewLocalEngine(Config{}, discardLogger())
	stub := &stubRunner{tesseractOut: "現場事務所 設置撤去"}
	e.runner = stub
	e.raster.runner = stub

	text, err := e.RecognizePage(context.Background(), "/data/kouji.pdf", 2)
	require.NoError(t, err)
	assert.Equal(t, "現場事務所 設置撤去", text)

	require.Len(t, stub.calls, 2)
	assert.Equal(t, []string{"pdftoppm", "-f", "2", "-l", "2", "-r", "300", "-png", "/data/kouji.pdf"}, stub.calls[0][:9])
	assert.Equal(t, "tesseract", stub.calls[1][0])
	assert.Equal(t, []string{"stdout", "-l", "jpn"}, stub.calls[1][2:])
}

func TestLocalEngine_Defaults(t *testing.T) {
	e := NewLocalEngine(Config{}, nil)
	assert.Equal(t, "pdftoppm", e.cfg.Pdftoppm)
	assert.Equal(t, "tesseract", e.cfg.Tesseract)
	assert.Equal(t, "jpn", e.cfg.TesseractLang)
	assert.Equal(t, 300, e.cfg.DPI)
	assert.Equal(t, MethodLocal, e.Method())
}

func TestLocalEngine_MissingTesseract(t *testing.T) {
	e := NewLocalEngine(Config{}, discardLogger())
	stub := &stubRunner{
		failTool: "tesseract",
		failErr:  &exec.Error{Name: "tesseract", Err: exec.ErrNotFound},
	}
	e.runner = stub
	e.raster.runner = stub

	_, err := e.RecognizePage(context.Background(), "/data/kouji.pdf", 1)
	require.Error(t, err)
	assert.Equal(t, diag.CauseMissingTool, Classify(err))
}

func TestLocalEngine_RasterFailure(t *testing.T) {
	e := NewLocalEngine(Config{}, discardLogger())
	stub := &stubRunner{failTool: "pdftoppm", failErr: errors.New("exit status 1")}
	e.runner = stub
	e.raster.runner = stub

	_, err := e.RecognizePage(context.Background(), "/data/kouji.pdf", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftoppm page 1")
	assert.Equal(t, diag.CauseExternal, Classify(err))
}

type stubTranscriber struct {
	got []byte
	out string
	err error
}

func (s *stubTranscriber) Transcribe(_ context.Context, jpeg []byte) (string, error) {
	s.got = jpeg
	return s.out, s.err
}

func TestVisionEngine_RecognizePage(t *testing.T) {
	tr := &stubTranscriber{out: "図面タイトル: 平面図"}
	e := NewVisionEngine(Config{DPI: 150}, tr, discardLogger())
	stub := &stubRunner{imageBytes: []byte{0xFF, 0xD8, 0xFF}}
	e.raster.runner = stub

	text, err := e.RecognizePage(context.Background(), "/data/zumen.pdf", 5)
	require.NoError(t, err)
	assert.Equal(t, "図面タイトル: 平面図", text)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, tr.got)
	assert.Equal(t, []string{"-f", "5", "-l", "5", "-r", "150", "-jpeg"}, stub.calls[0][1:8])
	assert.Equal(t, MethodVision, e.Method())
}

func TestVisionEngine_TranscribeError(t *testing.T) {
	tr := &stubTranscriber{err: errors.New("rate limited")}
	e := NewVisionEngine(Config{}, tr, discardLogger())
	e.raster.runner = &stubRunner{}

	_, err := e.RecognizePage(context.Background(), "/data/zumen.pdf", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vision transcription page 1")
	assert.Equal(t, diag.CauseExternal, Classify(err))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, diag.CauseMissingTool, Classify(&exec.Error{Name: "pdftoppm", Err: exec.ErrNotFound}))
	assert.Equal(t, diag.CauseExternal, Classify(errors.New("exit status 127")))
}
