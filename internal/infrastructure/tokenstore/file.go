// Package tokenstore persists the bearer token, the console's single piece
// of durable client-side state, under the fixed key name. A file store is
// the default; a Redis store serves deployments where the gateway's state
// must survive host moves.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenKey is the fixed name the token lives under, whatever the backing.
const TokenKey = "auth_token"

// File stores the token in a single 0600 file.
type File struct {
	path string
}

// NewFile returns a file-backed store. An empty path defaults to
// .console/auth_token under the working directory.
func NewFile(path string) *File {
	if path == "" {
		path = filepath.Join(".console", TokenKey)
	}
	return &File{path: path}
}

func (f *File) Load() (string, bool, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (f *File) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
