// Package testutil provides shared test helpers for setting up notes repositories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/storage"
)

// TestRepo creates a temporary notes repository directory with a storage.Provider.
func TestRepo(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestGitRepo creates a temporary directory that looks like a git work tree
// (it has a .git directory) without requiring the git binary.
func TestGitRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}
