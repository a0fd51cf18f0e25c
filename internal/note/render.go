package note

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

const maxLinks = 8

// frontmatter is the YAML block prepended to every note.
type frontmatter struct {
	ID         string   `yaml:"id"`
	Date       string   `yaml:"date"`
	Project    string   `yaml:"project"`
	Topic      string   `yaml:"topic"`
	Tags       []string `yaml:"tags,flow"`
	Source     string   `yaml:"source"`
	Confidence string   `yaml:"confidence"`
}

// buildTLDR produces the short bullet summary at the top of the note.
func buildTLDR(title string, meta models.NoteMeta, fileRefs []string, evidenceCount int) []string {
	var bullets []string
	if title != "" {
		bullets = append(bullets, fmt.Sprintf("Main issue: %s.", title))
	}
	if ctx := metaContext(meta); ctx != "" {
		bullets = append(bullets, fmt.Sprintf("Context: %s.", ctx))
	}
	if len(fileRefs) > 0 {
		bullets = append(bullets, fmt.Sprintf("Likely location: %s.", fileRefs[0]))
	}
	if evidenceCount > 0 {
		bullets = append(bullets, fmt.Sprintf("Evidence lines captured: %d.", evidenceCount))
	}
	if len(bullets) < 3 {
		bullets = append(bullets, "Next step: review the evidence and reproduce the issue with a minimal case.")
	}
	if len(bullets) > 6 {
		bullets = bullets[:6]
	}
	return bullets
}

// buildKeyFindings derives finding bullets from the selected evidence.
func buildKeyFindings(evidence []string, meta models.NoteMeta, fileRefs []string) []string {
	var findings []string
	for _, line := range evidence {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "implicit declaration"):
			findings = append(findings, "Implicit declaration detected in output.")
		case strings.Contains(lower, "redefinition"):
			findings = append(findings, "Redefinition reported in output.")
		case errorRe.MatchString(line):
			findings = append(findings, "Error: "+cleanTitle(line))
		case warningRe.MatchString(line):
			findings = append(findings, "Warning: "+cleanTitle(line))
		case fileLineRe.MatchString(line):
			findings = append(findings, "Location referenced: "+strings.TrimSpace(line))
		}
	}
	if len(fileRefs) > 0 {
		n := min(len(fileRefs), 3)
		findings = append(findings, "File references include: "+strings.Join(fileRefs[:n], ", "))
	}
	if len(meta.Files) > 0 {
		n := min(len(meta.Files), 5)
		findings = append(findings, "Files mentioned: "+strings.Join(meta.Files[:n], ", "))
	}
	if len(meta.Functions) > 0 {
		n := min(len(meta.Functions), 5)
		findings = append(findings, "Functions mentioned: "+strings.Join(meta.Functions[:n], ", "))
	}
	findings = dedupePreserve(findings)
	if len(findings) == 0 {
		findings = append(findings, "No explicit error lines found; review excerpts for context.")
	}
	if len(findings) > 5 {
		findings = findings[:5]
	}
	return findings
}

// buildNextSteps suggests follow-ups based on the markers present in the text.
func buildNextSteps(text string, fileRefs []string, meta models.NoteMeta) []string {
	var steps []string
	lower := strings.ToLower(text)
	if strings.Contains(lower, "implicit declaration") {
		steps = append(steps, "Verify C99 headers or missing prototypes for implicit declaration errors.")
	}
	if strings.Contains(lower, "redefinition") {
		steps = append(steps, "Search for duplicate definitions or conflicting headers causing redefinition.")
	}
	if len(fileRefs) > 0 {
		steps = append(steps, fmt.Sprintf("Inspect %s around the referenced line.", fileRefs[0]))
	}
	if len(meta.Files) > 0 {
		n := min(len(meta.Files), 3)
		steps = append(steps, fmt.Sprintf("Review related files: %s.", strings.Join(meta.Files[:n], ", ")))
	}
	if len(steps) == 0 {
		steps = append(steps, "Reproduce the issue with a minimal input and capture a short log excerpt.")
	}
	if len(steps) > 5 {
		steps = steps[:5]
	}
	return steps
}

// buildLinks collects caller-provided links plus URLs found in the text.
func buildLinks(text string, meta models.NoteMeta) []string {
	links := append([]string{}, meta.Links...)
	links = append(links, urlRe.FindAllString(text, -1)...)
	for i, link := range links {
		links[i] = strings.TrimSpace(link)
	}
	links = dedupePreserve(links)
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}

// estimateConfidence grades how much evidence backs the note.
func estimateConfidence(evidenceCount int) string {
	switch {
	case evidenceCount >= 4:
		return "high"
	case evidenceCount <= 1:
		return "low"
	default:
		return "medium"
	}
}

// buildSummary produces the one-line summary returned in the CLI envelope.
func buildSummary(title string, meta models.NoteMeta, evidenceCount int) string {
	var parts []string
	if title != "" {
		parts = append(parts, fmt.Sprintf("Main issue: %s.", title))
	}
	if ctx := metaContext(meta); ctx != "" {
		parts = append(parts, fmt.Sprintf("Context: %s.", ctx))
	}
	if evidenceCount > 0 {
		parts = append(parts, fmt.Sprintf("Evidence includes %d key lines.", evidenceCount))
	}
	if len(parts) == 0 {
		return "Summary not available."
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, " ")
}

func metaContext(meta models.NoteMeta) string {
	var parts []string
	if meta.Project != "" {
		parts = append(parts, meta.Project)
	}
	if meta.Topic != "" {
		parts = append(parts, meta.Topic)
	}
	return strings.Join(parts, " / ")
}

// renderSummaryBody assembles the Markdown body for a summary-mode note.
func renderSummaryBody(title string, tldr, findings, evidence, steps, links []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## TL;DR\n")
	writeBullets(&b, tldr, "")

	b.WriteString("\n## Key findings\n")
	writeBullets(&b, findings, "")

	b.WriteString("\n## Evidence (excerpts)\n")
	writeBullets(&b, evidence, "(no excerpts found)")

	b.WriteString("\n## Next steps\n")
	writeBullets(&b, steps, "")

	b.WriteString("\n## Links / References\n")
	writeBullets(&b, links, "(none)")

	return b.String()
}

func writeBullets(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		if empty != "" {
			b.WriteString("- " + empty + "\n")
		}
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

// renderNote produces the full file content: YAML frontmatter, a blank line,
// then the body.
func renderNote(fm frontmatter, body string) ([]byte, error) {
	if fm.Project == "" {
		fm.Project = "general"
	}
	if fm.Topic == "" {
		fm.Topic = "general"
	}
	if fm.Source == "" {
		fm.Source = "chat"
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	block, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(block)
	b.WriteString("---\n\n")
	// The body is written verbatim so document-mode input round-trips
	// byte-for-byte.
	b.WriteString(body)
	return []byte(b.String()), nil
}
