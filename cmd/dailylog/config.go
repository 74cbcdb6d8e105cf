package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/config"
	"github.com/gorewood/dailylog/internal/output"
)

// newConfigCmd creates the config command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the settings dailylog runs with and where they come from.

Settings resolve in this order, first match wins:
  1. --root flag
  2. DAILYLOG_ROOT / DAILYLOG_REMOTE environment variables
  3. .env.local, .env, then <config dir>/env
  4. <config dir>/config.yaml
  5. built-in defaults

The config dir is $DAILYLOG_CONFIG_HOME, else $XDG_CONFIG_HOME/dailylog, else
~/.config/dailylog (%AppData%\dailylog on Windows).`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer
	path := config.FilePath()
	_, statErr := os.Stat(path)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"config_file":   path,
			"config_exists": statErr == nil,
			"root":          env.cfg.Root,
			"remote":        env.cfg.Remote,
			"layout":        env.cfg.Layout,
		})
	}

	printer.Section("Config")
	printer.KeyValue("file", path)
	if statErr != nil {
		printer.Dimmed("  not found, using defaults")
	}
	printer.KeyValue("root", env.cfg.Root)
	printer.KeyValue("remote", env.cfg.Remote)

	printer.Section("Layout")
	printer.KeyValue("tech", env.cfg.Layout.Tech)
	printer.KeyValue("fitness", env.cfg.Layout.Fitness)
	printer.KeyValue("english", env.cfg.Layout.English)
	printer.KeyValue("label", env.cfg.Layout.Label)
	return nil
}

// configInitFlags holds the flags for config init.
type configInitFlags struct {
	remote string
	force  bool
}

func newConfigInitCmd() *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write config.yaml into the config dir with the default layout, so headings
and the detail label can be edited. --root is stored as the record directory.

Examples:
  dailylog config init
  dailylog config init --root ~/notes/daily --remote origin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.remote, "remote", "", "Git remote to push to")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing config file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *configInitFlags) error {
	printer := newPrinter(cmd)
	path := config.FilePath()

	if _, err := os.Stat(path); err == nil && !flags.force {
		userErr := output.NewUserErrorf("config file already exists: %s (use --force to overwrite)", path)
		printer.Error(userErr)
		return userErr
	}

	cfg := config.Default()
	if root := lookupFlag(cmd, "root"); root != "" {
		cfg.Root = root
	}
	cfg.Remote = flags.remote

	if err := cfg.Save(path); err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}

	return printer.Success(map[string]any{
		"status":  "ok",
		"path":    path,
		"message": "wrote " + path,
	})
}
