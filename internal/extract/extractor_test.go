package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/idea-forge/internal/llm"
	"github.com/forgeworks/idea-forge/internal/model"
)

type stubClient struct {
	response string
	err      error
	requests []llm.Request
}

func (s *stubClient) GenerateStructured(_ context.Context, req llm.Request) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"demo.PNG", KindImage},
		{"photo.jpeg", KindImage},
		{"pitch.pdf", KindDocument},
		{"deck.pptx", KindSlides},
		{"writeup.docx", KindOffice},
		{"walkthrough.mp4", KindVideo},
		{"notes.txt", KindPlainText},
		{"readme.md", KindPlainText},
		{"archive.zip", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.path))
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := New(&stubClient{}, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.png"))

	assert.Equal(t, SourceNotFound, result.Source)
	assert.Empty(t, result.Content)
	assert.Equal(t, model.CategoryText, result.Category)
}

func TestExtractPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("build log for the demo"), 0o644))

	e := New(&stubClient{}, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "build log for the demo", result.Content)
	assert.Equal(t, model.CategoryText, result.Category)
}

func TestExtractImageVision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.png")
	require.NoError(t, os.WriteFile(path, []byte("not a real png"), 0o644))

	client := &stubClient{response: `{"content": "Screenshot of a running dashboard", "content_type": "Prototype"}`}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceVision, result.Source)
	assert.Equal(t, "Screenshot of a running dashboard", result.Content)
	assert.Equal(t, model.CategoryPrototype, result.Category)
	require.Len(t, client.requests, 1)
	require.Len(t, client.requests[0].Images, 1)
	assert.Contains(t, client.requests[0].Images[0], "data:image/png;base64,")
}

func TestExtractImageFallsBackWhenVisionFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	client := &stubClient{err: errors.New("provider unavailable")}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "Image file: demo.jpg", result.Content)
	assert.Equal(t, model.CategoryText, result.Category)
}

func TestExtractImageFallsBackOnUnparseableResponse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))

	client := &stubClient{response: "I could not analyze this image."}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "Image file: demo.jpg", result.Content)
}

// fakePageRenderer installs a stand-in pdftoppm on PATH that emits the
// given number of page files, so the rendering path is testable without
// poppler installed.
func fakePageRenderer(t *testing.T, pages int) {
	t.Helper()
	binDir := t.TempDir()
	script := "#!/bin/sh\nfor prefix in \"$@\"; do :; done\n"
	for i := 1; i <= pages; i++ {
		script += "printf 'jpegbytes' > \"${prefix}-" + string(rune('0'+i)) + ".jpg\"\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "pdftoppm"), []byte(script), 0o755))
	t.Setenv("PATH", binDir)
}

func TestExtractPDFSendsRenderedPages(t *testing.T) {
	fakePageRenderer(t, 2)

	path := filepath.Join(t.TempDir(), "pitch.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	client := &stubClient{response: `{"content": "Screenshots of a running app", "content_type": "Prototype"}`}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceVision, result.Source)
	assert.Equal(t, model.CategoryPrototype, result.Category)
	require.Len(t, client.requests, 1)
	require.Len(t, client.requests[0].Images, 2)
	for _, img := range client.requests[0].Images {
		assert.Contains(t, img, "data:image/jpeg;base64,")
	}
	assert.Contains(t, client.requests[0].Prompt, "pitch.pdf")
}

func TestExtractPDFWithoutRendererEndsAtStub(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	path := filepath.Join(t.TempDir(), "pitch.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	client := &stubClient{}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "File: pitch.pdf", result.Content)
	assert.Empty(t, client.requests)
}

func TestExtractUnreadablePDFEndsAtStub(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a real pdf"), 0o644))

	client := &stubClient{err: errors.New("provider unavailable")}
	e := New(client, testLogger(), DefaultConfig())

	result := e.Extract(context.Background(), path)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "File: pitch.pdf", result.Content)
	assert.Equal(t, model.CategoryText, result.Category)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	s := strings.Repeat("képernyő", 4)

	// byte 12 lands inside a two-byte rune, forcing a walk-back.
	clipped := truncate(s, 12)
	assert.True(t, utf8.ValidString(clipped))
	assert.LessOrEqual(t, len(clipped), 12)
	assert.True(t, strings.HasPrefix(s, clipped))
	assert.Equal(t, s, truncate(s, len(s)))
}

func TestResultFromResponse(t *testing.T) {
	t.Run("prototype", func(t *testing.T) {
		result, err := resultFromResponse(`{"content": "a demo", "content_type": "Prototype"}`, SourceVision)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryPrototype, result.Category)
		assert.Equal(t, "a demo", result.Content)
	})

	t.Run("unknown category defaults to text", func(t *testing.T) {
		result, err := resultFromResponse(`{"content": "slides", "content_type": "Slides"}`, SourceVision)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryText, result.Category)
	})

	t.Run("invalid json is an error", func(t *testing.T) {
		_, err := resultFromResponse("nope", SourceVision)
		assert.Error(t, err)
	})
}
