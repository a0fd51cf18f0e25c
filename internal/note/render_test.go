package note

import (
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func TestEstimateConfidence(t *testing.T) {
	if estimateConfidence(0) != "low" || estimateConfidence(1) != "low" {
		t.Error("0-1 evidence lines should be low")
	}
	if estimateConfidence(2) != "medium" || estimateConfidence(3) != "medium" {
		t.Error("2-3 evidence lines should be medium")
	}
	if estimateConfidence(4) != "high" {
		t.Error("4+ evidence lines should be high")
	}
}

func TestRenderSummaryBody_EmptySections(t *testing.T) {
	body := renderSummaryBody("T", nil, nil, nil, nil, nil)
	if !strings.Contains(body, "- (no excerpts found)") {
		t.Error("missing evidence placeholder")
	}
	if !strings.Contains(body, "- (none)") {
		t.Error("missing links placeholder")
	}
}

func TestRenderNote_Defaults(t *testing.T) {
	data, err := renderNote(frontmatter{ID: "id", Date: "2025-01-15"}, "body\n")
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{"project: general", "topic: general", "source: chat", "tags: []"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q in:\n%s", want, s)
		}
	}
	if !strings.HasSuffix(s, "---\n\nbody\n") {
		t.Errorf("unexpected layout:\n%s", s)
	}
}

func TestBuildLinks_Capped(t *testing.T) {
	var urls []string
	for i := 0; i < 12; i++ {
		urls = append(urls, "https://example.com/"+strings.Repeat("x", i+1))
	}
	links := buildLinks(strings.Join(urls, "\n"), models.NoteMeta{})
	if len(links) != maxLinks {
		t.Errorf("len = %d, want %d", len(links), maxLinks)
	}
}

func TestBuildTLDR_MinimumBullets(t *testing.T) {
	bullets := buildTLDR("", models.NoteMeta{}, nil, 0)
	if len(bullets) == 0 {
		t.Fatal("expected at least one bullet")
	}
	if !strings.Contains(bullets[len(bullets)-1], "Next step") {
		t.Errorf("bullets = %v", bullets)
	}
}
