// Package handlers implements the JSON-in/JSON-out command handlers.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
)

// readInput returns the raw request body: the file at path when given,
// otherwise everything from stdin. Blank input is a validation error.
func readInput(stdin io.Reader, path string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %s", apperr.ErrValidation, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("%w: no input JSON provided", apperr.ErrValidation)
	}
	return raw, nil
}

// decodeInput unmarshals a request object.
func decodeInput(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: invalid JSON input: %s", apperr.ErrValidation, err)
	}
	return nil
}

// writeResult encodes one result object to the output stream.
func writeResult(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// errorKind maps an error to the envelope's error_kind label, or "" when the
// error carries no known kind.
func errorKind(err error) string {
	if k := apperr.Kind(err); k != nil {
		return k.Error()
	}
	return ""
}
