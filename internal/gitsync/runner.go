package gitsync

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// Runner executes a single git invocation in dir with the given extra
// environment and returns captured stdout/stderr. A non-nil error means a
// non-zero exit or a failure to start the process.
type Runner interface {
	Run(ctx context.Context, dir string, env []string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs the external git binary. Its exit codes and output are the
// only contract consumed.
type ExecRunner struct{}

// Run invokes git with args in dir. env entries are appended to the process
// environment (used for author/committer overrides).
func (ExecRunner) Run(ctx context.Context, dir string, env []string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
