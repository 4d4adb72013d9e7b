package artwork

import (
	"path/filepath"
	"strings"

	"nasum/internal/config"
	"nasum/internal/fileutil"
)

// Store resolves episode numbers to cached artwork files.
type Store struct {
	Dir       string
	Extension string
}

// NewStore builds a Store from the artwork configuration.
func NewStore(cfg *config.Config) *Store {
	return &Store{Dir: cfg.Artwork.Dir, Extension: cfg.Artwork.Extension}
}

// Path returns where artwork for number is cached.
func (s *Store) Path(number string) string {
	ext := s.Extension
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(s.Dir, number+ext)
}

// Lookup reports the cached artwork for number, if present.
func (s *Store) Lookup(number string) (string, bool) {
	if s == nil || s.Dir == "" || number == "" {
		return "", false
	}
	path := s.Path(number)
	if !fileutil.Exists(path) {
		return "", false
	}
	return path, true
}
