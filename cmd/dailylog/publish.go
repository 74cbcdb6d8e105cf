package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// newPublishCmd creates the publish command. A nil gitExec runs the real git
// binary.
func newPublishCmd(gitExec git.ExecFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [date]",
		Short: "Commit and push an existing record",
		Long: `Stage, commit and push the record for a day (default today) without
prompting. The record must already exist.

Runs, from the record directory:
  git add -- YYYY_MM_DD.md
  git commit -m "chore: daily log YYYY-MM-DD"
  git push [remote]

Later steps are skipped once one fails.

Examples:
  dailylog publish
  dailylog publish 2024-03-05`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, gitExec, args)
		},
	}
}

func runPublish(cmd *cobra.Command, gitExec git.ExecFunc, args []string) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	date, err := resolveDateArg(args)
	if err != nil {
		printer.Error(err)
		return err
	}
	if !env.store.Exists(date) {
		userErr := output.NewUserErrorf("no record for %s", date.Format(record.InputLayout))
		printer.Error(userErr)
		return userErr
	}

	steps, err := publishRecord(cmd.Context(), env, gitExec, date)
	if printer.IsJSON() {
		result := map[string]any{
			"status":    "ok",
			"date":      date.Format(record.InputLayout),
			"path":      env.store.Path(date),
			"published": err == nil,
			"steps":     stepSummaries(steps),
		}
		if err != nil {
			result["status"] = "error"
			result["error"] = err.Error()
		}
		if writeErr := printer.WriteJSON(result); writeErr != nil && err == nil {
			return writeErr
		}
		return err
	}

	if err != nil {
		printer.Error(err)
		return err
	}
	printPublished(printer, date, steps)
	return nil
}
