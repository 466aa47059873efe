// Package icon produces display references for dropped files: emoji hints, inline
// image thumbnails, or an extracted executable icon.
package icon

import (
	"context"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Hint carries what the caller already knows about the file.
type Hint struct {
	IsExecutable bool
}

// Extractor pulls an embedded icon out of an executable. Implementations are
// platform specific; none ships by default.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

type cacheKey struct {
	path string
	hint Hint
}

type cached struct {
	ref string
	ok  bool
}

// Service acquires icons and remembers the answers per (path, hint).
type Service struct {
	mu        sync.Mutex
	cache     map[cacheKey]cached
	extractor Extractor
	thumbSize int

	statFn func(string) (fs.FileInfo, error)
	openFn func(string) (io.ReadCloser, error)
}

type Option func(*Service)

// WithExtractor installs an executable icon extractor.
func WithExtractor(e Extractor) Option { return func(s *Service) { s.extractor = e } }

// WithThumbnailSize overrides MaxThumbnail.
func WithThumbnailSize(px int) Option { return func(s *Service) { s.thumbSize = px } }

func NewService(opts ...Option) *Service {
	s := &Service{
		cache:     make(map[cacheKey]cached),
		thumbSize: MaxThumbnail,
		statFn:    os.Stat,
		openFn:    func(p string) (io.ReadCloser, error) { return os.Open(p) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Acquire returns an icon reference for path, or ok=false when none is available.
// It never returns an error.
func (s *Service) Acquire(ctx context.Context, path string, hint Hint) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	key := cacheKey{path: path, hint: hint}
	s.mu.Lock()
	if c, hit := s.cache[key]; hit {
		s.mu.Unlock()
		return c.ref, c.ok
	}
	s.mu.Unlock()

	ref, ok := s.acquire(ctx, path, hint)

	s.mu.Lock()
	s.cache[key] = cached{ref: ref, ok: ok}
	s.mu.Unlock()
	return ref, ok
}

func (s *Service) acquire(ctx context.Context, path string, hint Hint) (string, bool) {
	if info, err := s.statFn(path); err == nil && info.IsDir() {
		return FolderEmoji, true
	}

	if hint.IsExecutable {
		if s.extractor == nil {
			return "", false
		}
		ref, err := s.extractor.Extract(ctx, path)
		if err != nil || ref == "" {
			log.Printf("Icon extraction failed for %s: %v", path, err)
			return "", false
		}
		return ref, true
	}

	family := FamilyOf(extOf(path))
	if family == FamilyImage {
		ref, err := s.thumbnail(path)
		if err == nil {
			return ref, true
		}
		log.Printf("Thumbnail for %s unavailable: %v", path, err)
	}
	if emoji, ok := familyEmoji[family]; ok {
		return emoji, true
	}
	return "", false
}

func (s *Service) thumbnail(path string) (string, error) {
	f, err := s.openFn(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Thumbnail(f, s.thumbSize)
}

// Forget drops cached answers for path.
func (s *Service) Forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.cache {
		if k.path == path {
			delete(s.cache, k)
		}
	}
}

// extOf returns the extension of the last path element, splitting on both separators.
func extOf(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return filepath.Ext(base)
}
