package note

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxLineLen = 300

var (
	fileLineRe = regexp.MustCompile(`([A-Za-z0-9_./\\-]+):(\d+)(?::(\d+))?`)
	urlRe      = regexp.MustCompile(`https?://\S+`)
	errorRe    = regexp.MustCompile(`(?i)\b(error|fatal|exception|traceback)\b`)
	warningRe  = regexp.MustCompile(`(?i)\bwarning\b`)
)

// scoreLine rates how likely a line is to be evidence worth keeping.
func scoreLine(line string) int {
	score := 0
	lower := strings.ToLower(line)
	if strings.Contains(lower, "error") {
		score += 3
	}
	if strings.Contains(lower, "fatal") {
		score += 3
	}
	if strings.Contains(lower, "exception") {
		score += 2
	}
	if strings.Contains(lower, "traceback") {
		score += 2
	}
	if strings.Contains(lower, "warning") {
		score += 1
	}
	if strings.Contains(lower, "implicit declaration") {
		score += 2
	}
	if strings.Contains(lower, "redefinition") {
		score += 2
	}
	if fileLineRe.MatchString(line) {
		score += 2
	}
	return score
}

// selectEvidence picks up to maxLines evidence lines: highest-scoring first,
// returned in original order, deduplicated, each capped at maxLineLen. When
// nothing scores, the first non-blank lines stand in. The selection is padded
// to at least three lines when the text has that many.
func selectEvidence(lines []string, maxLines int) []string {
	var nonempty []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			nonempty = append(nonempty, line)
		}
	}

	type scored struct {
		score int
		idx   int
		line  string
	}
	var hits []scored
	for idx, line := range nonempty {
		if s := scoreLine(line); s > 0 {
			hits = append(hits, scored{score: s, idx: idx, line: line})
		}
	}

	var out []string
	if len(hits) > 0 {
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].score != hits[j].score {
				return hits[i].score > hits[j].score
			}
			return hits[i].idx < hits[j].idx
		})
		if len(hits) > maxLines {
			hits = hits[:maxLines]
		}
		sort.Slice(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })
		for _, h := range hits {
			out = append(out, h.line)
		}
	} else {
		out = append(out, nonempty[:min(maxLines, len(nonempty))]...)
	}
	out = dedupePreserve(out)

	// Pad short selections with context lines.
	if len(out) < 3 && len(nonempty) > len(out) {
		want := min(3, min(maxLines, len(nonempty)))
		for _, line := range nonempty {
			if len(out) >= want {
				break
			}
			if contains(out, line) {
				continue
			}
			out = append(out, line)
		}
	}

	if len(out) > maxLines {
		out = out[:maxLines]
	}
	for i, line := range out {
		out[i] = sanitizeLine(line)
	}
	return out
}

func sanitizeLine(line string) string {
	return truncateLine(strings.TrimRight(line, "\n"), maxLineLen)
}

// truncateLine caps s at max bytes, backing up to a rune boundary so the cut
// never emits invalid UTF-8.
func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// extractFileRefs returns deduplicated <path>:<line>[:<col>] references.
func extractFileRefs(lines []string) []string {
	var refs []string
	for _, line := range lines {
		m := fileLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ref := m[1] + ":" + m[2]
		if m[3] != "" {
			ref += ":" + m[3]
		}
		refs = append(refs, ref)
	}
	return dedupePreserve(refs)
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
