package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Notes NotesConfig       `yaml:"notes"`
	Git   GitConfig         `yaml:"git"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	return c.Git.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// NotesConfig holds summarizer defaults.
//
// RepoPath deliberately has no built-in default: it is injected here (the
// config file supports ${ANSUZ_NOTES_REPO} expansion) or supplied per request
// via notes_repo_path. An empty path at use time is a configuration error.
type NotesConfig struct {
	RepoPath        string `yaml:"repo_path"`
	MaxExcerptLines int    `yaml:"max_excerpt_lines"`
	Timezone        string `yaml:"timezone"`
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxExcerptLines, validation.Required, validation.Min(1)),
	)
}

// GitConfig holds sync tool defaults.
type GitConfig struct {
	Remote      string `yaml:"remote"`
	Branch      string `yaml:"branch"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Validate validates the git configuration.
func (c *GitConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Remote, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Notes: NotesConfig{
			MaxExcerptLines: 8,
		},
		Git: GitConfig{
			Remote: "origin",
		},
	}
}
