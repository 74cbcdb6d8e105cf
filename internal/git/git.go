package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gorewood/dailylog/internal/output"
)

// Result is the captured outcome of one git invocation.
type Result struct {
	Args     []string `json:"args"`
	Stdout   string   `json:"stdout"`
	Stderr   string   `json:"stderr"`
	ExitCode int      `json:"exit_code"`
}

// OK reports whether the command exited with status zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Diagnostic returns the command's trimmed stderr, or its stdout when stderr is
// empty. Git prints some failures, such as "nothing to commit", on stdout.
func (r Result) Diagnostic() string {
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	return strings.TrimSpace(r.Stdout)
}

// ExecFunc runs git with args in dir. It returns an error only when git could not
// be started or was interrupted; exit status is reported in the Result.
type ExecFunc func(ctx context.Context, dir string, args ...string) (Result, error)

// Capture runs git with args in dir and captures its output.
// Returns an *output.ExitError if git is not installed.
func Capture(ctx context.Context, dir string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Args: args}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if err == nil {
		return res, nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return res, output.NewSystemErrorWithCause("git not found: ensure git is installed and in PATH", err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	return res, output.NewSystemErrorWithCause("git "+strings.Join(args, " ")+" interrupted", err)
}

// RunContext runs git with args in dir and returns trimmed stdout.
// A non-zero exit becomes an *output.ExitError carrying git's diagnostic.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := Capture(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		msg := res.Diagnostic()
		if msg == "" {
			msg = "exit status " + strconv.Itoa(res.ExitCode)
		}
		return "", output.NewSystemError("git command failed: " + msg)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(ctx context.Context, dir string) bool {
	out, err := RunContext(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// RepoRoot returns the top-level directory of the work tree containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	root, err := RunContext(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}
