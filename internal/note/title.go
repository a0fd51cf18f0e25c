package note

import (
	"regexp"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

const maxTitleLen = 120

var (
	leadTimestampRe = regexp.MustCompile(`^\[?\d{4}-\d{2}-\d{2}[^\]]*\]?\s*`)
	leadSeverityRe  = regexp.MustCompile(`(?i)^(error|fatal|exception|warning)[:\s-]+`)
	errorTailRe     = regexp.MustCompile(`(?i)\berror\b\s*[:\-]?\s*(.+)`)
)

// cleanTitle strips leading timestamps and severity prefixes from a log line
// and bounds its length so it reads as a note title.
func cleanTitle(line string) string {
	original := strings.TrimSpace(line)
	cleaned := leadTimestampRe.ReplaceAllString(original, "")
	cleaned = leadSeverityRe.ReplaceAllString(cleaned, "")
	if m := errorTailRe.FindStringSubmatch(cleaned); m != nil && strings.TrimSpace(m[1]) != "" {
		cleaned = strings.TrimSpace(m[1])
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = original
	}
	return truncateLine(cleaned, maxTitleLen)
}

// inferTitle picks a title from the first notable line, falling back to
// metadata and finally a generic placeholder.
func inferTitle(lines []string, meta models.NoteMeta) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if errorRe.MatchString(line) || warningRe.MatchString(line) ||
			strings.Contains(lower, "implicit declaration") || strings.Contains(lower, "redefinition") {
			return cleanTitle(line)
		}
	}
	if meta.Topic != "" && meta.Project != "" {
		return meta.Project + ": " + meta.Topic
	}
	if meta.Topic != "" {
		return meta.Topic
	}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return cleanTitle(line)
		}
	}
	if meta.Project != "" {
		return meta.Project
	}
	return "Notes summary"
}
