// Package gitsync orchestrates the pull/stage/commit/push sequence for a
// notes repository as an explicit state machine.
package gitsync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// maxCapturedOutput bounds the raw git output attached to a result.
const maxCapturedOutput = 8000

// state enumerates the machine's positions. Every run walks
// Validate → Pull → Stage → Commit → Push → Done, with Error terminal from
// any state and a Stage → Done short-circuit when nothing is staged.
type state int

const (
	stateValidate state = iota
	statePull
	stateStage
	stateCommit
	statePush
	stateDone
	stateError
)

func (s state) String() string {
	switch s {
	case stateValidate:
		return "validate"
	case statePull:
		return "pull"
	case stateStage:
		return "stage"
	case stateCommit:
		return "commit"
	case statePush:
		return "push"
	case stateDone:
		return "done"
	case stateError:
		return "error"
	default:
		return "unknown"
	}
}

// conflictMarkers are the substrings git prints when a rebase-pull hits
// conflicts.
var conflictMarkers = []string{
	"conflict",
	"fix conflicts",
	"resolve all conflicts",
	"after resolving the conflicts",
	"could not apply",
}

// unmergedPrefixes are the porcelain status codes of unmerged paths.
var unmergedPrefixes = map[string]struct{}{
	"DD": {}, "AU": {}, "UD": {}, "UA": {}, "DU": {}, "AA": {}, "UU": {},
}

// Config carries the sync defaults sourced from application configuration.
type Config struct {
	RepoPath    string
	Remote      string
	Branch      string
	AuthorName  string
	AuthorEmail string
}

// Syncer runs the sync state machine.
type Syncer struct {
	cfg    Config
	runner Runner
	now    func() time.Time
}

// Option is a functional option for configuring the syncer.
type Option func(*Syncer)

// WithRunner overrides the git runner (used by tests).
func WithRunner(r Runner) Option {
	return func(s *Syncer) { s.runner = r }
}

// WithClock overrides the time source used for generated commit messages.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

// NewSyncer creates a Syncer with the given defaults.
func NewSyncer(cfg Config, opts ...Option) *Syncer {
	s := &Syncer{
		cfg:    cfg,
		runner: ExecRunner{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync executes the machine for one request. The result is always populated:
// the action log holds every step that ran, and partial progress (a commit
// whose push failed) keeps its hash so the caller can resume from the right
// step.
func (s *Syncer) Sync(ctx context.Context, req *models.SyncRequest) *models.SyncResult {
	m := s.newMachine(ctx, req)

	if err := req.Validate(); err != nil {
		m.fail(err)
	}

	for m.state != stateDone && m.state != stateError {
		next := m.step()
		slog.Debug("sync transition",
			slog.String("from", m.state.String()),
			slog.String("to", next.String()))
		m.state = next
	}

	res := &models.SyncResult{
		OK:         m.err == nil,
		Actions:    m.actions,
		CommitHash: m.commitHash,
		Stdout:     truncate(strings.Join(m.stdoutParts, "")),
		Stderr:     truncate(strings.Join(m.stderrParts, "")),
	}
	if res.Actions == nil {
		res.Actions = []string{}
	}
	if m.err != nil {
		res.Error = m.err.Error()
		if k := apperr.Kind(m.err); k != nil {
			res.ErrorKind = k.Error()
		}
	}
	return res
}

// machine holds the mutable run state for a single Sync call.
type machine struct {
	syncer *Syncer
	ctx    context.Context

	repoPath   string
	addPaths   []string
	remote     string
	branch     string
	message    string
	allowEmpty bool
	env        []string

	state       state
	actions     []string
	stdoutParts []string
	stderrParts []string
	staged      []string
	commitHash  string
	err         error
}

func (s *Syncer) newMachine(ctx context.Context, req *models.SyncRequest) *machine {
	m := &machine{
		syncer:     s,
		ctx:        ctx,
		repoPath:   req.RepoPath,
		addPaths:   req.AddPaths,
		remote:     req.Remote,
		branch:     req.Branch,
		message:    req.CommitMessage,
		allowEmpty: req.AllowEmptyCommit,
		state:      stateValidate,
	}
	if m.repoPath == "" {
		m.repoPath = s.cfg.RepoPath
	}
	if m.remote == "" {
		m.remote = s.cfg.Remote
	}
	if m.remote == "" {
		m.remote = "origin"
	}
	if m.branch == "" {
		m.branch = s.cfg.Branch
	}
	if len(m.addPaths) == 0 {
		m.addPaths = []string{"notes/"}
	}

	authorName := req.AuthorName
	if authorName == "" {
		authorName = s.cfg.AuthorName
	}
	authorEmail := req.AuthorEmail
	if authorEmail == "" {
		authorEmail = s.cfg.AuthorEmail
	}
	if authorName != "" {
		m.env = append(m.env,
			"GIT_AUTHOR_NAME="+authorName,
			"GIT_COMMITTER_NAME="+authorName)
	}
	if authorEmail != "" {
		m.env = append(m.env,
			"GIT_AUTHOR_EMAIL="+authorEmail,
			"GIT_COMMITTER_EMAIL="+authorEmail)
	}
	return m
}

// step runs the transition for the current state and returns the next one.
func (m *machine) step() state {
	switch m.state {
	case stateValidate:
		return m.validate()
	case statePull:
		return m.pull()
	case stateStage:
		return m.stage()
	case stateCommit:
		return m.commit()
	case statePush:
		return m.push()
	default:
		return m.state
	}
}

// fail records err and moves the machine to the terminal error state.
func (m *machine) fail(err error) state {
	m.err = err
	m.state = stateError
	return stateError
}

// git runs one git invocation, accumulating captured output.
func (m *machine) git(args ...string) (string, string, error) {
	stdout, stderr, err := m.syncer.runner.Run(m.ctx, m.repoPath, m.env, args...)
	if stdout != "" {
		m.stdoutParts = append(m.stdoutParts, stdout)
	}
	if stderr != "" {
		m.stderrParts = append(m.stderrParts, stderr)
	}
	return stdout, stderr, err
}

// validate confirms the repo path holds a git work tree. No mutation happens
// before this passes.
func (m *machine) validate() state {
	if m.repoPath == "" {
		return m.fail(fmt.Errorf("%w: repo path is not configured; set git.repo_path or pass repo_path", apperr.ErrConfig))
	}
	info, err := os.Stat(m.repoPath)
	if err != nil || !info.IsDir() {
		return m.fail(fmt.Errorf("%w: repo path does not exist or is not a directory: %s", apperr.ErrConfig, m.repoPath))
	}
	if gi, err := os.Stat(filepath.Join(m.repoPath, ".git")); err != nil || !gi.IsDir() {
		return m.fail(fmt.Errorf("%w: repo path is not a git repository (missing .git): %s", apperr.ErrConfig, m.repoPath))
	}
	if _, _, err := m.git("status", "--porcelain"); err != nil {
		return m.fail(fmt.Errorf("%w: git status failed: %s", apperr.ErrGit, err))
	}
	if m.branch == "" {
		m.branch = m.currentBranch()
	}
	m.actions = append(m.actions, "validated "+m.repoPath)
	return statePull
}

// currentBranch resolves the checked-out branch, or empty on detached HEAD.
func (m *machine) currentBranch() string {
	stdout, _, err := m.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	branch := strings.TrimSpace(stdout)
	if branch == "HEAD" {
		return ""
	}
	return branch
}

// pull rebases onto the remote. A conflicted rebase is terminal: the work
// tree is left as-is for manual resolution, no automatic abort.
func (m *machine) pull() state {
	args := []string{"pull", "--rebase", m.remote}
	if m.branch != "" {
		args = append(args, m.branch)
	}
	stdout, stderr, err := m.git(args...)
	if err != nil {
		if detectConflict(stdout + "\n" + stderr) {
			return m.fail(fmt.Errorf("%w: pull failed due to conflicts; resolve conflicts and rerun", apperr.ErrConflict))
		}
		return m.fail(fmt.Errorf("%w: git pull --rebase failed: %s", apperr.ErrGit, err))
	}

	// A rebase can exit zero and still leave unmerged paths behind.
	stdout, _, err = m.git("status", "--porcelain")
	if err != nil {
		return m.fail(fmt.Errorf("%w: git status failed after pull: %s", apperr.ErrGit, err))
	}
	if hasUnmerged(stdout) {
		return m.fail(fmt.Errorf("%w: unmerged paths detected after pull; resolve conflicts and rerun", apperr.ErrConflict))
	}

	m.actions = append(m.actions, "pulled "+m.remote)
	return stateStage
}

// stage adds the configured paths and short-circuits to Done when the index
// is unchanged, which makes repeated syncs idempotent.
func (m *machine) stage() state {
	args := append([]string{"add"}, m.addPaths...)
	if _, _, err := m.git(args...); err != nil {
		return m.fail(fmt.Errorf("%w: git add failed: %s", apperr.ErrGit, err))
	}

	stdout, _, err := m.git("diff", "--cached", "--name-only")
	if err != nil {
		return m.fail(fmt.Errorf("%w: git diff --cached failed: %s", apperr.ErrGit, err))
	}
	for _, line := range strings.Split(stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			m.staged = append(m.staged, line)
		}
	}

	if len(m.staged) == 0 && !m.allowEmpty {
		m.actions = append(m.actions, "nothing to commit")
		return stateDone
	}
	m.actions = append(m.actions, fmt.Sprintf("staged %d file(s)", len(m.staged)))
	return stateCommit
}

// commit creates the commit and records its hash.
func (m *machine) commit() state {
	if m.message == "" {
		m.message = fmt.Sprintf("notes: sync %s (%d file(s))",
			m.syncer.now().Format("2006-01-02 15:04"), len(m.staged))
	}

	args := []string{"commit"}
	if m.allowEmpty && len(m.staged) == 0 {
		args = append(args, "--allow-empty")
	}
	args = append(args, "-m", m.message)
	if _, _, err := m.git(args...); err != nil {
		return m.fail(fmt.Errorf("%w: git commit failed: %s", apperr.ErrGit, err))
	}

	if stdout, _, err := m.git("rev-parse", "HEAD"); err == nil {
		m.commitHash = strings.TrimSpace(stdout)
	}

	short := m.commitHash
	if len(short) > 8 {
		short = short[:8]
	}
	m.actions = append(m.actions, "committed "+short)
	return statePush
}

// push publishes the branch. On failure the commit hash stays in the result
// so the caller can retry the push alone.
func (m *machine) push() state {
	args := []string{"push", m.remote}
	if m.branch != "" {
		args = append(args, m.branch)
	}
	if _, _, err := m.git(args...); err != nil {
		return m.fail(fmt.Errorf("%w: git push failed: %s", apperr.ErrGit, err))
	}
	m.actions = append(m.actions, "pushed "+m.remote)
	return stateDone
}

// detectConflict reports whether raw git output mentions a rebase conflict.
func detectConflict(output string) bool {
	lowered := strings.ToLower(output)
	for _, marker := range conflictMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// hasUnmerged reports whether porcelain status output lists unmerged paths.
func hasUnmerged(porcelain string) bool {
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 2 {
			continue
		}
		code := line[:2]
		if _, ok := unmergedPrefixes[code]; ok {
			return true
		}
		if strings.Contains(code, "U") {
			return true
		}
	}
	return false
}

// truncate bounds captured command output.
func truncate(s string) string {
	if len(s) <= maxCapturedOutput {
		return s
	}
	return s[:maxCapturedOutput-12] + "...truncated"
}
