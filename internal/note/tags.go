package note

import (
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// MaxTags bounds the tag list of a note.
const MaxTags = 12

// vocabEntry maps a lowercase text marker to the tags it implies.
type vocabEntry struct {
	marker string
	tags   []string
}

// tagVocabulary is the fixed heuristic vocabulary: error keywords, language
// markers, and recurring topic words. Matched case-insensitively against the
// whole text.
var tagVocabulary = []vocabEntry{
	{"implicit declaration", []string{"c99", "implicit-declaration"}},
	{"redefinition", []string{"redefinition"}},
	{"segmentation fault", []string{"segfault"}},
	{"undefined reference", []string{"linker"}},
	{"linker", []string{"linker"}},
	{"traceback (most recent call last)", []string{"python"}},
	{"panic:", []string{"go", "panic"}},
	{"goroutine", []string{"go"}},
	{"nullpointerexception", []string{"java"}},
	{"typeerror", []string{"typeerror"}},
	{"error", []string{"error"}},
	{"warning", []string{"warning"}},
	{"/src/htslib", []string{"htslib"}},
	{"makefile", []string{"build"}},
	{"cmake", []string{"build"}},
	{"timeout", []string{"timeout"}},
	{"deadlock", []string{"deadlock"}},
}

// buildTags combines caller-provided tags with vocabulary hits found in the
// text. Vocabulary hits are ordered by first occurrence; the result is
// normalized to kebab-case, deduplicated, and capped at MaxTags.
func buildTags(text string, meta models.NoteMeta) []string {
	tags := append([]string{}, meta.Tags...)

	lower := strings.ToLower(text)
	type hit struct {
		pos  int
		tags []string
	}
	var hits []hit
	for _, entry := range tagVocabulary {
		if pos := strings.Index(lower, entry.marker); pos >= 0 {
			hits = append(hits, hit{pos: pos, tags: entry.tags})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	for _, h := range hits {
		tags = append(tags, h.tags...)
	}

	var normalized []string
	for _, tag := range tags {
		if norm := normalizeTag(tag); norm != "" {
			normalized = append(normalized, norm)
		}
	}
	normalized = dedupePreserve(normalized)
	if len(normalized) > MaxTags {
		normalized = normalized[:MaxTags]
	}
	return normalized
}
