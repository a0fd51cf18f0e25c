package note

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  lots   of   spaces  ", "lots-of-spaces"},
		{"C99: implicit declaration!", "c99-implicit-declaration"},
		{"---", "note"},
		{"", "note"},
		{"ALL CAPS", "all-caps"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugify_Bounded(t *testing.T) {
	long := strings.Repeat("word ", 30)
	got := Slugify(long)
	if len(got) > maxSlugLen {
		t.Errorf("len = %d, want <= %d", len(got), maxSlugLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug ends with dash: %q", got)
	}
}

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Project X  ", "project-x"},
		{"c++", "c"},
		{"a--b", "a-b"},
		{"###", ""},
	}
	for _, c := range cases {
		if got := normalizeTag(c.in); got != c.want {
			t.Errorf("normalizeTag(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDedupePreserve(t *testing.T) {
	got := dedupePreserve([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("got %v, want [a b c]", got)
	}
}
