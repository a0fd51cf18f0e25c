// Package apperr defines the error kinds surfaced in result envelopes.
package apperr

import "errors"

var (
	// ErrConfig marks a missing or invalid repository path or configuration
	// value. Not retryable until the caller fixes configuration.
	ErrConfig = errors.New("configuration error")
	// ErrValidation marks malformed input JSON or a missing required field.
	// Reported before any side effect is performed.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a rebase/merge conflict. The repository is left as-is
	// for manual resolution.
	ErrConflict = errors.New("conflict")
	// ErrWrite marks a filesystem write failure, including a refused overwrite.
	ErrWrite = errors.New("write error")
	// ErrGit marks a git subprocess failure other than a conflict.
	ErrGit = errors.New("git error")
)

// Kind returns the sentinel wrapped by err, or nil if err is unclassified.
func Kind(err error) error {
	for _, k := range []error{ErrConfig, ErrValidation, ErrConflict, ErrWrite, ErrGit} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
