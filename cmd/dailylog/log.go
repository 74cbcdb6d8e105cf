package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/prompt"
	"github.com/gorewood/dailylog/internal/record"
)

// logFlags holds all flag values for the log command.
type logFlags struct {
	date      string
	fields    [len(record.Fields)]string
	publish   bool
	noPublish bool
}

// fieldPrompts are the questions asked for each detail.
var fieldPrompts = [len(record.Fields)]string{
	record.Tech:    "Tech details",
	record.Fitness: "Fitness details",
	record.English: "English details",
}

// newLogCmd creates the log command. A nil gitExec runs the real git binary.
func newLogCmd(gitExec git.ExecFunc) *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Write the record for a day",
		Long: `Write the record for a day, prompting for anything not given as a flag.

Each prompt shows the value already recorded for that date; press enter to keep
it. After writing, you are asked whether to publish the record with git add,
commit and push, unless --publish or --no-publish decides it.

Examples:
  dailylog log
  dailylog log --date 2024-03-05 --fitness "10k run"
  dailylog log --tech "refactor cache" --fitness "" --english "" --publish`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, gitExec, flags)
		},
	}

	addLogFlags(cmd, flags)
	return cmd
}

// addLogFlags registers the log flags on cmd. The root command shares them so
// that running dailylog alone writes a record.
func addLogFlags(cmd *cobra.Command, flags *logFlags) {
	cmd.Flags().StringVar(&flags.date, "date", "", "Record date as YYYY-MM-DD (default today)")
	for _, f := range record.Fields {
		cmd.Flags().StringVar(&flags.fields[f], f.Key(), "", fieldPrompts[f]+" (skips the prompt)")
	}
	cmd.Flags().BoolVar(&flags.publish, "publish", false, "Publish with git without asking")
	cmd.Flags().BoolVar(&flags.noPublish, "no-publish", false, "Do not publish and do not ask")
	cmd.MarkFlagsMutuallyExclusive("publish", "no-publish")
}

// runLog executes the log flow: resolve the date, collect details over the
// recorded defaults, save, then optionally publish.
func runLog(cmd *cobra.Command, gitExec git.ExecFunc, flags *logFlags) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	// Prompts go to stderr in JSON mode so stdout stays parseable.
	promptOut := cmd.OutOrStdout()
	if printer.IsJSON() {
		promptOut = cmd.ErrOrStderr()
	}
	prompter := prompt.New(cmd.InOrStdin(), promptOut)

	date, err := askDate(cmd, prompter, flags.date)
	if err != nil {
		printer.Error(err)
		return err
	}

	defaults, err := env.store.LoadDefaults(date)
	if err != nil {
		printer.Error(err)
		return err
	}
	if !printer.IsJSON() {
		warnRecordIssues(printer, env.store, date)
	}

	input := record.Entry{Date: date}
	for _, f := range record.Fields {
		text := flags.fields[f]
		if !cmd.Flags().Changed(f.Key()) {
			text, err = prompter.Ask(fieldPrompts[f], defaults.Get(f).Or(""))
			if err != nil {
				return promptFailed(printer, err)
			}
		}
		input.Set(f, text)
	}

	entry := record.Merge(defaults, input)
	path, err := env.store.Save(entry)
	if err != nil {
		printer.Error(err)
		return err
	}
	if !printer.IsJSON() {
		_ = printer.Success(map[string]any{"message": "wrote " + record.FileName(date)})
	}

	publish, err := decidePublish(prompter, flags)
	if err != nil {
		return promptFailed(printer, err)
	}

	result := map[string]any{
		"status":    "ok",
		"date":      date.Format(record.InputLayout),
		"path":      path,
		"entry":     entry,
		"published": false,
	}
	if !publish {
		if printer.IsJSON() {
			return printer.Success(result)
		}
		return nil
	}

	steps, err := publishRecord(cmd.Context(), env, gitExec, date)
	result["steps"] = stepSummaries(steps)
	if err != nil {
		if printer.IsJSON() {
			result["status"] = "error"
			result["error"] = err.Error()
			_ = printer.WriteJSON(result)
			return err
		}
		printer.Error(err)
		return err
	}

	result["published"] = true
	if printer.IsJSON() {
		return printer.Success(result)
	}
	printPublished(printer, date, steps)
	return nil
}

// askDate returns the --date flag if given, otherwise prompts with today as
// the default. The date is validated before anything is read or written.
func askDate(cmd *cobra.Command, prompter *prompt.Prompter, flagValue string) (time.Time, error) {
	text := flagValue
	if !cmd.Flags().Changed("date") {
		var err error
		text, err = prompter.Ask("Date (YYYY-MM-DD)", today().Format(record.InputLayout))
		if err != nil {
			return time.Time{}, output.NewSystemErrorWithCause(err.Error(), err)
		}
	}
	return record.ParseDate(text)
}

// warnRecordIssues warns when the existing record for date has problems, since
// details under a misformed heading read as missing and would be saved empty.
func warnRecordIssues(printer *output.Printer, store *record.Store, date time.Time) {
	if !store.Exists(date) {
		return
	}
	data, err := store.Read(date)
	if err != nil {
		return
	}
	if issues := store.Codec().Check(date, data); len(issues) > 0 {
		printer.Warn("%s: %s (run 'dailylog doctor --fix' first to keep its details)",
			record.FileName(date), issueSummary(issues))
	}
}

// decidePublish applies --publish / --no-publish, otherwise asks. The default
// answer is no.
func decidePublish(prompter *prompt.Prompter, flags *logFlags) (bool, error) {
	switch {
	case flags.publish:
		return true, nil
	case flags.noPublish:
		return false, nil
	}
	return prompter.Confirm("Publish with git add, commit and push?", false)
}

func promptFailed(printer *output.Printer, err error) error {
	sysErr := output.NewSystemErrorWithCause(err.Error(), err)
	printer.Error(sysErr)
	return sysErr
}

// publishRecord stages, commits and pushes the record for date from the record
// directory. It stops at the first failing step.
func publishRecord(ctx context.Context, env *appEnv, gitExec git.ExecFunc, date time.Time) ([]git.StepResult, error) {
	pipeline := git.NewPipeline(env.store.Root(), gitExec, env.logger)
	steps := git.PublishSteps(record.FileName(date), record.CommitMessage(date), env.cfg.Remote)
	return pipeline.Run(ctx, steps)
}

// printPublished shows the commit and push output the way git reported it.
func printPublished(printer *output.Printer, date time.Time, steps []git.StepResult) {
	for _, step := range steps {
		if step.Name == "add" {
			continue
		}
		if out := strings.TrimSpace(step.Stdout); out != "" {
			printer.Dimmed(out)
		}
	}
	_ = printer.Success(map[string]any{"message": "published " + record.FileName(date)})
}

// stepSummary is the JSON form of one git step.
type stepSummary struct {
	Name     string `json:"name"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output,omitempty"`
}

func stepSummaries(steps []git.StepResult) []stepSummary {
	summaries := make([]stepSummary, 0, len(steps))
	for _, step := range steps {
		summaries = append(summaries, stepSummary{
			Name:     step.Name,
			ExitCode: step.ExitCode,
			Output:   strings.TrimSpace(step.Diagnostic()),
		})
	}
	return summaries
}
