package note

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSelectEvidence_PrefersScoredLines(t *testing.T) {
	lines := []string{
		"just context",
		"error: something broke",
		"more context",
		"src/main.c:42: warning: unused variable",
	}
	got := selectEvidence(lines, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	// Original order preserved.
	if got[0] != "error: something broke" {
		t.Errorf("got[0] = %q", got[0])
	}
	if got[1] != "src/main.c:42: warning: unused variable" {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestSelectEvidence_FallbackToFirstLines(t *testing.T) {
	lines := []string{"", "alpha", "beta", "gamma", "delta"}
	got := selectEvidence(lines, 2)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("got %v, want [alpha beta]", got)
	}
}

func TestSelectEvidence_PadsToThree(t *testing.T) {
	lines := []string{"error: one", "context a", "context b", "context c"}
	got := selectEvidence(lines, 8)
	if len(got) < 3 {
		t.Errorf("len = %d, want >= 3: %v", len(got), got)
	}
	if got[0] != "error: one" {
		t.Errorf("got[0] = %q", got[0])
	}
}

func TestSelectEvidence_CapsLineLength(t *testing.T) {
	long := "error: " + strings.Repeat("x", 400)
	got := selectEvidence([]string{long}, 4)
	if len(got[0]) > maxLineLen {
		t.Errorf("len = %d, want <= %d", len(got[0]), maxLineLen)
	}
	if !strings.HasSuffix(got[0], "...") {
		t.Errorf("expected ellipsis suffix: %q", got[0][len(got[0])-10:])
	}
}

func TestTruncateLine_RuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cut point must not be split.
	long := strings.Repeat("a", maxLineLen-4) + "日本語"
	got := truncateLine(long, maxLineLen)
	if len(got) > maxLineLen {
		t.Errorf("len = %d, want <= %d", len(got), maxLineLen)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix: %q", got)
	}

	short := "日本語のログ"
	if truncateLine(short, maxLineLen) != short {
		t.Error("short line must pass through unchanged")
	}
}

func TestSelectEvidence_Dedupes(t *testing.T) {
	lines := []string{"error: dup", "error: dup", "error: dup"}
	got := selectEvidence(lines, 8)
	if len(got) != 1 {
		t.Errorf("got %v, want one line", got)
	}
}

func TestExtractFileRefs(t *testing.T) {
	lines := []string{
		"src/main.c:42: error",
		"pkg/util.go:7:13: undefined",
		"src/main.c:42: again",
		"no refs here",
	}
	got := extractFileRefs(lines)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 refs", got)
	}
	if got[0] != "src/main.c:42" || got[1] != "pkg/util.go:7:13" {
		t.Errorf("refs = %v", got)
	}
}

func TestScoreLine(t *testing.T) {
	if scoreLine("plain text") != 0 {
		t.Error("plain text should score 0")
	}
	if scoreLine("fatal error: boom") <= scoreLine("warning: meh") {
		t.Error("fatal error should outscore a warning")
	}
	if scoreLine("a.go:1: error") <= scoreLine("error") {
		t.Error("file ref should add to the score")
	}
}
