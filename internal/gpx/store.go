package gpx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded GPX files on disk between preview and import.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) SaveTemp(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	key := uuid.NewString()
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) LoadTemp(key string) ([]byte, error) {
	if key == "" || strings.ContainsAny(key, "/\\.") {
		return nil, errors.New("invalid temp file key")
	}
	return os.ReadFile(s.path(key))
}

func (s *Store) DeleteTemp(key string) {
	if key == "" || strings.ContainsAny(key, "/\\.") {
		return
	}
	_ = os.Remove(s.path(key))
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".gpx")
}
