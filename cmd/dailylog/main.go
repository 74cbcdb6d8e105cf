// Package main provides the entry point for the dailylog CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/config"
	"github.com/gorewood/dailylog/internal/envfile"
	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the dailylog CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(nil)
}

// newRootCmdWith creates the root command running git through gitExec.
// A nil gitExec runs the real git binary.
func newRootCmdWith(gitExec git.ExecFunc) *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "dailylog",
		Short: "Keep a daily tech / fitness / english log in markdown",
		Long: `dailylog keeps one markdown record per day, named YYYY_MM_DD.md, with three
details: tech, fitness and english.

Run without a command to write today's record. Each prompt offers the value
already recorded for that date, so pressing enter keeps it. The record can then
be staged, committed and pushed with git.

Examples:
  dailylog                                   # prompt for everything
  dailylog --date 2024-03-05 --tech "refactor cache" --no-publish
  dailylog show 2024-03-05
  dailylog publish`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, gitExec, flags)
		},
	}

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("root", "", "Record directory (default from config, then \".\")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")
	addLogFlags(cmd, flags)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, gitExec)

	return cmd
}

// loadEnvFiles imports DAILYLOG_* settings from env files. Variables already in
// the environment always win, and earlier files win over later ones.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles() {
	_, _ = envfile.Load(".env.local")
	_, _ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_, _ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "record", Title: "Record Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "sync", Title: "Sync Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, gitExec git.ExecFunc) {
	addGroupedCommand(cmd, newLogCmd(gitExec), "record")
	addGroupedCommand(cmd, newShowCmd(), "record")
	addGroupedCommand(cmd, newListCmd(), "record")
	addGroupedCommand(cmd, newExportCmd(), "record")

	addGroupedCommand(cmd, newPublishCmd(gitExec), "sync")
	addGroupedCommand(cmd, newServeCmd(gitExec), "sync")

	addGroupedCommand(cmd, newDoctorCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
