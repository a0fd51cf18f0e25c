// Package note turns raw text into Markdown notes with YAML frontmatter,
// written into dated buckets of a local notes repository.
package note

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/storage"
)

// Config carries the builder defaults sourced from application configuration.
// RepoPath has no built-in default; it must come from here or from the input.
type Config struct {
	RepoPath        string
	MaxExcerptLines int
	Timezone        string
}

// Builder derives and writes notes.
type Builder struct {
	cfg     Config
	now     func() time.Time
	shortID func() string
}

// Option is a functional option for configuring the builder.
type Option func(*Builder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithShortID overrides the disambiguator source.
func WithShortID(fn func() string) Option {
	return func(b *Builder) { b.shortID = fn }
}

// NewBuilder creates a Builder with the given defaults.
func NewBuilder(cfg Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:     cfg,
		now:     time.Now,
		shortID: newShortID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newShortID returns the 8-character random tail of a ULID, lowercased.
func newShortID() string {
	id := strings.ToLower(ulid.Make().String())
	return id[len(id)-8:]
}

// Create validates the input, derives the note, and writes it into the notes
// repository. The returned note's Path is absolute.
func (b *Builder) Create(in *models.NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	repoPath := in.NotesRepoPath
	if repoPath == "" {
		repoPath = b.cfg.RepoPath
	}
	if repoPath == "" {
		return nil, fmt.Errorf("%w: notes repository path is not configured; set notes.repo_path or pass notes_repo_path", apperr.ErrConfig)
	}
	store, err := storage.NewFS(repoPath)
	if err != nil {
		return nil, err
	}

	date, err := b.resolveDate(in)
	if err != nil {
		return nil, err
	}

	n, content, err := b.build(in, date)
	if err != nil {
		return nil, err
	}

	rel := filepath.Join("notes", date.Format("2006"), date.Format("2006-01"), fmt.Sprintf("%s.md", n.ID))
	if err := store.WriteNew(rel, content); err != nil {
		return nil, err
	}
	n.Path = filepath.Join(store.Root(), rel)
	return n, nil
}

// resolveDate applies the explicit date or the current time in the configured
// timezone.
func (b *Builder) resolveDate(in *models.NoteInput) (time.Time, error) {
	tzName := in.Timezone
	if tzName == "" {
		tzName = b.cfg.Timezone
	}
	loc := time.Local
	if tzName != "" {
		l, err := time.LoadLocation(tzName)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid timezone: %s", apperr.ErrValidation, tzName)
		}
		loc = l
	}
	if in.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", in.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", apperr.ErrValidation)
		}
		return d, nil
	}
	return b.now().In(loc), nil
}

// build derives the note record and rendered file content without touching
// the filesystem.
func (b *Builder) build(in *models.NoteInput, date time.Time) (*models.Note, []byte, error) {
	dateStr := date.Format("2006-01-02")
	lines := strings.Split(in.Text, "\n")

	maxExcerpt := in.MaxExcerptLines
	if maxExcerpt == 0 {
		maxExcerpt = b.cfg.MaxExcerptLines
	}
	if maxExcerpt == 0 {
		maxExcerpt = models.DefaultMaxExcerptLines
	}

	evidence := selectEvidence(lines, maxExcerpt)
	fileRefs := extractFileRefs(lines)

	// Mode resolution: a leading heading means the input is already a
	// pre-formed document and is stored verbatim.
	heading, isDoc := parser.FirstHeading(in.Text)
	mode := in.Mode
	if mode == "" || mode == models.ModeAuto {
		mode = models.ModeSummary
		if isDoc {
			mode = models.ModeDocument
		}
	}

	var title string
	if mode == models.ModeDocument && isDoc {
		title = heading
	} else {
		title = inferTitle(lines, in.Meta)
	}

	slug := b.deriveSlug(in, title)
	id := fmt.Sprintf("%s-%s-%s", dateStr, slug, b.shortID())
	tags := buildTags(in.Text, in.Meta)
	summary := buildSummary(title, in.Meta, len(evidence))

	var body string
	if mode == models.ModeDocument {
		body = in.Text
	} else {
		tldr := buildTLDR(title, in.Meta, fileRefs, len(evidence))
		findings := buildKeyFindings(evidence, in.Meta, fileRefs)
		steps := buildNextSteps(in.Text, fileRefs, in.Meta)
		links := buildLinks(in.Text, in.Meta)
		body = renderSummaryBody(title, tldr, findings, evidence, steps, links)
	}

	content, err := renderNote(frontmatter{
		ID:         id,
		Date:       dateStr,
		Project:    in.Meta.Project,
		Topic:      in.Meta.Topic,
		Tags:       tags,
		Source:     in.Meta.Source,
		Confidence: estimateConfidence(len(evidence)),
	}, body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: render note: %s", apperr.ErrWrite, err)
	}

	return &models.Note{
		ID:       id,
		Title:    title,
		Tags:     tags,
		Evidence: evidence,
		Summary:  summary,
		Body:     body,
	}, content, nil
}

// deriveSlug applies the precedence meta > slug_hint > title.
func (b *Builder) deriveSlug(in *models.NoteInput, title string) string {
	if in.Meta.Project != "" || in.Meta.Topic != "" {
		return Slugify(strings.TrimSpace(in.Meta.Project + " " + in.Meta.Topic))
	}
	if in.SlugHint != "" {
		return Slugify(in.SlugHint)
	}
	return Slugify(title)
}
