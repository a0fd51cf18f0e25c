package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"config", fmt.Errorf("%w: repo missing", ErrConfig), ErrConfig},
		{"validation", fmt.Errorf("%w: bad field", ErrValidation), ErrValidation},
		{"conflict", fmt.Errorf("%w: rebase stopped", ErrConflict), ErrConflict},
		{"write", fmt.Errorf("%w: rename failed", ErrWrite), ErrWrite},
		{"git", fmt.Errorf("%w: exit 128", ErrGit), ErrGit},
		{"wrapped twice", fmt.Errorf("outer: %w", fmt.Errorf("%w: inner", ErrGit)), ErrGit},
		{"unclassified", errors.New("plain"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
