package models

import (
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

func TestNoteInputValidate(t *testing.T) {
	cases := []struct {
		name string
		in   NoteInput
		ok   bool
	}{
		{"minimal", NoteInput{Text: "hello"}, true},
		{"empty text", NoteInput{}, false},
		{"valid mode", NoteInput{Text: "x", Mode: ModeDocument}, true},
		{"invalid mode", NoteInput{Text: "x", Mode: "condense"}, false},
		{"valid date", NoteInput{Text: "x", Date: "2025-01-15"}, true},
		{"invalid date", NoteInput{Text: "x", Date: "15/01/2025"}, false},
		{"negative excerpt lines", NoteInput{Text: "x", MaxExcerptLines: -1}, false},
	}
	for _, c := range cases {
		err := c.in.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok {
			if err == nil {
				t.Errorf("%s: expected error", c.name)
			} else if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
			}
		}
	}
}

func TestSyncRequestValidate(t *testing.T) {
	req := SyncRequest{}
	if err := req.Validate(); err != nil {
		t.Errorf("empty request should pass, defaults apply later: %v", err)
	}

	req = SyncRequest{AddPaths: []string{"notes/", ""}}
	if err := req.Validate(); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank add path: err = %v, want ErrValidation", err)
	}
}
