package icon

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

type stubExtractor struct {
	ref   string
	err   error
	calls int
}

func (s *stubExtractor) Extract(context.Context, string) (string, error) {
	s.calls++
	return s.ref, s.err
}

func TestAcquireDirectory(t *testing.T) {
	ref, ok := NewService().Acquire(context.Background(), t.TempDir(), Hint{})
	assert.True(t, ok)
	assert.Equal(t, FolderEmoji, ref)
}

func TestAcquireImageThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	writePNG(t, path, 256, 128)

	ref, ok := NewService().Acquire(context.Background(), path, Hint{})
	require.True(t, ok)
	require.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))
	assert.Equal(t, KindDataURL, KindOf(ref))
}

func TestAcquireBrokenImageFallsBackToFamily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a jpeg"), 0o644))

	ref, ok := NewService().Acquire(context.Background(), path, Hint{})
	assert.True(t, ok)
	assert.Equal(t, familyEmoji[FamilyImage], ref)
}

func TestAcquireFamilies(t *testing.T) {
	s := NewService()
	tests := map[string]string{
		`C:\docs\report.PDF`: "📄",
		"/media/clip.mkv":    "🎬",
		"/music/song.flac":   "🎵",
		"/tmp/bundle.tar":    "📦",
		"/home/u/run.py":     "📜",
	}
	for path, want := range tests {
		ref, ok := s.Acquire(context.Background(), path, Hint{})
		assert.True(t, ok, path)
		assert.Equal(t, want, ref, path)
	}

	_, ok := s.Acquire(context.Background(), "/tmp/mystery.qqq", Hint{})
	assert.False(t, ok)
}

func TestAcquireExecutable(t *testing.T) {
	_, ok := NewService().Acquire(context.Background(), `C:\apps\notepad.exe`, Hint{IsExecutable: true})
	assert.False(t, ok, "no extractor means no icon")

	ex := &stubExtractor{ref: "data:image/png;base64,AAAA"}
	s := NewService(WithExtractor(ex))
	ref, ok := s.Acquire(context.Background(), `C:\apps\notepad.exe`, Hint{IsExecutable: true})
	assert.True(t, ok)
	assert.Equal(t, ex.ref, ref)

	_, _ = s.Acquire(context.Background(), `C:\apps\notepad.exe`, Hint{IsExecutable: true})
	assert.Equal(t, 1, ex.calls, "second lookup is cached")

	s.Forget(`C:\apps\notepad.exe`)
	_, _ = s.Acquire(context.Background(), `C:\apps\notepad.exe`, Hint{IsExecutable: true})
	assert.Equal(t, 2, ex.calls)

	failing := NewService(WithExtractor(&stubExtractor{err: errors.New("no resources")}))
	_, ok = failing.Acquire(context.Background(), `C:\apps\tool.exe`, Hint{IsExecutable: true})
	assert.False(t, ok)
}

func TestAcquireCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := NewService().Acquire(ctx, t.TempDir(), Hint{})
	assert.False(t, ok)
}

func TestFit(t *testing.T) {
	w, h := fit(256, 128, 64)
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
	w, h = fit(10, 400, 64)
	assert.Equal(t, 1, w)
	assert.Equal(t, 64, h)
	w, h = fit(32, 16, 64)
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(""))
	assert.Equal(t, KindEmoji, KindOf("🚀"))
	assert.Equal(t, KindEmoji, KindOf("🖼️"))
	assert.Equal(t, KindURL, KindOf("https://example.com/i.png"))
	assert.Equal(t, KindDataURL, KindOf("data:image/png;base64,AA"))
	assert.Equal(t, KindPath, KindOf(`C:\icons\app.ico`))
	assert.Equal(t, KindPath, KindOf("icon"))
}
