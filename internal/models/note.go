// Package models defines the domain types for Ansuz.
package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/apperr"
)

// Note modes.
const (
	ModeAuto     = "auto"
	ModeSummary  = "summary"
	ModeDocument = "document"
)

// DefaultMaxExcerptLines bounds the evidence excerpt when the input does not
// override it.
const DefaultMaxExcerptLines = 8

// NoteMeta carries caller-supplied context about the raw text.
type NoteMeta struct {
	Project   string   `json:"project,omitempty"`
	Topic     string   `json:"topic,omitempty"`
	Source    string   `json:"source,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Files     []string `json:"files,omitempty"`
	Functions []string `json:"functions,omitempty"`
	Links     []string `json:"links,omitempty"`
}

// NoteInput is the summarizer request read from stdin or an input file.
type NoteInput struct {
	Text            string   `json:"text"`
	Meta            NoteMeta `json:"meta,omitempty"`
	SlugHint        string   `json:"slug_hint,omitempty"`
	Mode            string   `json:"mode,omitempty"`
	NotesRepoPath   string   `json:"notes_repo_path,omitempty"`
	Date            string   `json:"date,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	MaxExcerptLines int      `json:"max_excerpt_lines,omitempty"`
}

// Validate checks the request fields before any side effect.
func (in *NoteInput) Validate() error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.Text, validation.Required),
		validation.Field(&in.Mode, validation.In(ModeAuto, ModeSummary, ModeDocument)),
		validation.Field(&in.MaxExcerptLines, validation.Min(0)),
		validation.Field(&in.Date, validation.Date("2006-01-02")),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return nil
}

// Note is the materialized record of a written note.
type Note struct {
	Path     string   `json:"path"`
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Evidence []string `json:"evidence"`
	Summary  string   `json:"summary"`
	Body     string   `json:"body"`
}

// SyncRequest is the sync tool request read from stdin.
type SyncRequest struct {
	RepoPath         string   `json:"repo_path,omitempty"`
	AddPaths         []string `json:"add_paths,omitempty"`
	CommitMessage    string   `json:"commit_message,omitempty"`
	Remote           string   `json:"remote,omitempty"`
	Branch           string   `json:"branch,omitempty"`
	AuthorName       string   `json:"author_name,omitempty"`
	AuthorEmail      string   `json:"author_email,omitempty"`
	AllowEmptyCommit bool     `json:"allow_empty_commit,omitempty"`
}

// Validate checks the request fields. RepoPath may be empty here; the
// orchestrator resolves it against configuration before touching the disk.
func (r *SyncRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.AddPaths, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return nil
}

// SyncResult is the sync tool response. Actions are appended in chronological
// order and returned even on failure.
type SyncResult struct {
	OK         bool     `json:"ok"`
	Actions    []string `json:"actions"`
	CommitHash string   `json:"commit_hash,omitempty"`
	Stdout     string   `json:"stdout,omitempty"`
	Stderr     string   `json:"stderr,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorKind  string   `json:"error_kind,omitempty"`
}
