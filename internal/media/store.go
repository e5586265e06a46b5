package media

import (
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes normalized images under a local directory served statically.
type Store struct {
	dir        string
	publicPath string
}

// NewStore creates a content store rooted at dir; saved files are addressed
// under publicPath (e.g. "/uploads").
func NewStore(dir, publicPath string) *Store {
	return &Store{dir: dir, publicPath: publicPath}
}

// Dir returns the local directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// PublicPath returns the URL prefix the stored files are served under.
func (s *Store) PublicPath() string {
	return s.publicPath
}

// Save writes the bytes under a random unique name and returns the public
// URL path.
func (s *Store) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	u := uuid.New()
	name := hex.EncodeToString(u[:]) + ".jpg"

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}
