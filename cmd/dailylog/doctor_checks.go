package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/record"
)

// runSetupChecks checks what writing and publishing records depends on.
func runSetupChecks(ctx context.Context, env *appEnv) []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkRecordDir(env.store.Root()))
	checks = append(checks, checkGitBinary())
	repo := checkGitRepo(ctx, env.store.Root())
	checks = append(checks, repo)
	if repo.Status == checkPass {
		checks = append(checks, checkPushTarget(ctx, env.store.Root(), env.cfg.Remote))
	}
	return checks
}

// checkRecordDir checks that the record directory exists.
func checkRecordDir(root string) checkResult {
	info, err := os.Stat(root)
	switch {
	case err == nil && info.IsDir():
		return checkResult{Name: "Record Directory", Status: checkPass, Message: "exists"}
	case err == nil:
		return checkResult{
			Name:    "Record Directory",
			Status:  checkFail,
			Message: root + " is not a directory",
			Hint:    "Set root in the config file or pass --root",
		}
	case os.IsNotExist(err):
		return checkResult{
			Name:    "Record Directory",
			Status:  checkWarn,
			Message: "not found",
			Hint:    "It is created when the first record is written",
		}
	default:
		return checkResult{Name: "Record Directory", Status: checkFail, Message: err.Error()}
	}
}

// checkGitBinary checks that git is on PATH.
func checkGitBinary() checkResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return checkResult{
			Name:    "Git Binary",
			Status:  checkWarn,
			Message: "git not found in PATH",
			Hint:    "Install git to publish records",
		}
	}
	return checkResult{Name: "Git Binary", Status: checkPass, Message: path}
}

// checkGitRepo checks that the record directory is inside a git work tree.
func checkGitRepo(ctx context.Context, root string) checkResult {
	if !git.IsRepo(ctx, root) {
		return checkResult{
			Name:    "Git Repository",
			Status:  checkWarn,
			Message: "record directory is not in a git repository",
			Hint:    "Run 'git init' there to publish records",
		}
	}
	top, err := git.RepoRoot(ctx, root)
	if err != nil {
		return checkResult{Name: "Git Repository", Status: checkWarn, Message: err.Error()}
	}
	return checkResult{Name: "Git Repository", Status: checkPass, Message: top}
}

// checkPushTarget checks that git push has somewhere to go.
func checkPushTarget(ctx context.Context, root, remote string) checkResult {
	if remote != "" {
		res, err := git.Capture(ctx, root, "remote", "get-url", remote)
		if err != nil || !res.OK() {
			return checkResult{
				Name:    "Push Target",
				Status:  checkFail,
				Message: fmt.Sprintf("configured remote %q does not exist", remote),
				Hint:    "Fix remote in the config file or DAILYLOG_REMOTE",
			}
		}
		return checkResult{Name: "Push Target", Status: checkPass, Message: "pushes to " + remote}
	}

	res, err := git.Capture(ctx, root, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil || !res.OK() {
		return checkResult{
			Name:    "Push Target",
			Status:  checkWarn,
			Message: "current branch has no upstream",
			Hint:    "Run 'git push -u <remote> <branch>' once, or set remote in the config file",
		}
	}
	return checkResult{Name: "Push Target", Status: checkPass, Message: "pushes to " + strings.TrimSpace(res.Stdout)}
}

// runRecordChecks inspects every record. Well-formed records are counted in a
// single check; each record with problems gets its own.
func runRecordChecks(env *appEnv, fix bool) []checkResult {
	dates, err := env.store.List()
	if err != nil {
		return []checkResult{{Name: "Records", Status: checkFail, Message: err.Error()}}
	}

	codec := env.store.Codec()
	var problems []checkResult
	clean := 0
	for _, date := range dates {
		data, err := env.store.Read(date)
		if err != nil {
			problems = append(problems, checkResult{
				Name:    record.FileName(date),
				Status:  checkFail,
				Message: err.Error(),
			})
			continue
		}

		issues := codec.Check(date, data)
		if len(issues) == 0 {
			clean++
			continue
		}
		problems = append(problems, recordCheck(env.store, date, data, issues, fix))
	}

	checks := make([]checkResult, 0, len(problems)+1)
	checks = append(checks, checkResult{
		Name:    "Records",
		Status:  checkPass,
		Message: fmt.Sprintf("%d of %d well-formed", clean, len(dates)),
	})
	return append(checks, problems...)
}

// issueSummary joins issues into one line, each prefixed with its field.
func issueSummary(issues []record.Issue) string {
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Field != "" {
			msgs = append(msgs, issue.Field+": "+issue.Message)
			continue
		}
		msgs = append(msgs, issue.Message)
	}
	return strings.Join(msgs, "; ")
}

// recordCheck reports the issues of one record and rewrites it when fix is set.
func recordCheck(store *record.Store, date time.Time, data []byte, issues []record.Issue, fix bool) checkResult {
	check := checkResult{
		Name:    record.FileName(date),
		Status:  checkWarn,
		Message: issueSummary(issues),
		Hint:    "Run 'dailylog doctor --fix' to rewrite it",
	}
	if !fix {
		return check
	}

	// Repair reads details under misformed headings that Decode would drop.
	details := store.Codec().Repair(data)
	if _, err := store.Save(record.Merge(details, record.Entry{Date: date})); err != nil {
		check.Status = checkFail
		check.Hint = "rewrite failed: " + err.Error()
		return check
	}
	check.Status = checkPass
	check.Message += " (rewritten)"
	check.Hint = ""
	return check
}
