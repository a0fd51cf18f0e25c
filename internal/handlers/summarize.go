package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/note"
)

// SummarizeResult is the summarizer's stdout envelope.
type SummarizeResult struct {
	OK        bool     `json:"ok"`
	Path      string   `json:"path,omitempty"`
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

// Summarize reads one NoteInput JSON object, writes the note, and emits one
// result object. The returned error is non-nil exactly when the envelope
// carries ok:false, so callers can map it to the exit code.
func Summarize(_ context.Context, builder *note.Builder, stdin io.Reader, stdout io.Writer, inputPath string) error {
	n, err := run(builder, stdin, inputPath)
	if err != nil {
		slog.Error("summarize failed", slog.String("error", err.Error()))
		writeResult(stdout, SummarizeResult{OK: false, Error: err.Error(), ErrorKind: errorKind(err)})
		return err
	}

	slog.Info("note written",
		slog.String("path", n.Path),
		slog.String("id", n.ID))
	writeResult(stdout, SummarizeResult{
		OK:      true,
		Path:    n.Path,
		ID:      n.ID,
		Title:   n.Title,
		Tags:    n.Tags,
		Summary: n.Summary,
	})
	return nil
}

func run(builder *note.Builder, stdin io.Reader, inputPath string) (*models.Note, error) {
	raw, err := readInput(stdin, inputPath)
	if err != nil {
		return nil, err
	}
	var in models.NoteInput
	if err := decodeInput(raw, &in); err != nil {
		return nil, err
	}
	return builder.Create(&in)
}
