package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFile_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), TokenKey)
	store := NewFile(path)

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ok || token != "tok-abc" {
		t.Fatalf("expected stored token, got %q ok=%v", token, ok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatal("token should be gone after clear")
	}
}

func TestFile_MissingFileIsNotAnError(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "does", "not", "exist"))

	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ok || token != "" {
		t.Fatalf("expected empty result, got %q ok=%v", token, ok)
	}
}

func TestFile_ClearIsIdempotent(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), TokenKey))

	if err := store.Clear(); err != nil {
		t.Fatalf("clear of missing file failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestFile_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", TokenKey)
	store := NewFile(path)

	if err := store.Save("tok"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok, _ := store.Load(); !ok {
		t.Fatal("expected token after save into new directory")
	}
}

func TestFile_WhitespaceOnlyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), TokenKey)
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, ok, err := NewFile(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ok {
		t.Fatal("whitespace-only file should count as no token")
	}
}
