package note

import (
	"regexp"
	"strings"
)

const maxSlugLen = 40

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	dashRunRe    = regexp.MustCompile(`-{2,}`)
	tagInvalidRe = regexp.MustCompile(`[^a-z0-9-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

// Slugify normalizes value into a URL-safe slug: lowercase, non-alphanumeric
// runs collapsed to a single dash, bounded length. Empty input yields "note".
func Slugify(value string) string {
	s := strings.ToLower(value)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "note"
	}
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// normalizeTag lowercases a tag and reduces it to kebab-case.
func normalizeTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = spaceRunRe.ReplaceAllString(t, "-")
	t = tagInvalidRe.ReplaceAllString(t, "")
	t = dashRunRe.ReplaceAllString(t, "-")
	return strings.Trim(t, "-")
}

// dedupePreserve removes duplicates keeping first-occurrence order.
func dedupePreserve(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
