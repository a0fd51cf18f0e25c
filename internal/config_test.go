package internal

import (
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.Git.Remote != "origin" {
		t.Errorf("remote = %q, want origin", cfg.Git.Remote)
	}
	if cfg.Notes.MaxExcerptLines != 8 {
		t.Errorf("max_excerpt_lines = %d, want 8", cfg.Notes.MaxExcerptLines)
	}
}

func TestDefaultConfig_NoRepoPathBakedIn(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Notes.RepoPath != "" {
		t.Errorf("repo_path = %q, want no built-in default", cfg.Notes.RepoPath)
	}
}

func TestNotesConfig_ExcerptLinesValidated(t *testing.T) {
	cfg := NotesConfig{MaxExcerptLines: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("zero max_excerpt_lines should fail")
	}
	cfg.MaxExcerptLines = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative max_excerpt_lines should fail")
	}
}

func TestGitConfig_RemoteRequired(t *testing.T) {
	cfg := GitConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty remote should fail")
	}
}

func TestFullConfig_ValidationPropagates(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Git.Remote = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch git error")
	}
}
