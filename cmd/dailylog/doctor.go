package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version string         `json:"version"`
	Root    string         `json:"root"`
	Setup   []checkResult  `json:"setup"`
	Records []checkResult  `json:"records"`
	Summary *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	fix   bool
	quiet bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the record directory and the records in it",
		Long: `Check the record directory and every record file in it.

Runs checks in two categories:
  SETUP    - Record directory, git binary, repository and push target
  RECORDS  - Each YYYY_MM_DD.md parsed as markdown: date heading, one section
             per detail, a quoted detail line under each section

With --fix, records with problems are rewritten in the standard layout. The
details that can be read are kept; anything else in the file is dropped.

Examples:
  dailylog doctor              # Run all checks
  dailylog doctor --fix        # Rewrite records with problems
  dailylog doctor --quiet      # Only show warnings and failures
  dailylog doctor --json       # Output results as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "Rewrite records with problems in the standard layout")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show warnings and failures")

	return cmd
}

// runDoctor executes the doctor command.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	result := &doctorResult{
		Version: version,
		Root:    env.store.Root(),
		Setup:   runSetupChecks(cmd.Context(), env),
		Records: runRecordChecks(env, flags.fix),
		Summary: &doctorSummary{},
	}
	for _, check := range append(append([]checkResult{}, result.Setup...), result.Records...) {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	outputDoctorHuman(printer, result, flags.quiet)
	return nil
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("dailylog doctor v%s\n", result.Version)
	printer.Dimmed(result.Root)

	printCheckSection(printer, "SETUP", result.Setup, quiet)
	printCheckSection(printer, "RECORDS", result.Records, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Println()
	printer.Println(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     -> %s\n", check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}
