package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/dailylog/internal/config"
	"github.com/gorewood/dailylog/internal/logging"
	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// appEnv is the resolved configuration and services a command runs with.
type appEnv struct {
	cfg     *config.Config
	store   *record.Store
	logger  *zap.Logger
	printer *output.Printer
}

// lookupFlag finds a flag on the command or, failing that, among the root's
// persistent flags.
func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return lookupFlag(cmd, "json") == "true"
}

// newPrinter creates the printer for a command from its --json and --color flags.
func newPrinter(cmd *cobra.Command) *output.Printer {
	isTTY := output.ResolveColorMode(lookupFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// loadAppEnv resolves settings (flags over environment over config file) and
// builds the record store. Errors are printed before being returned.
func loadAppEnv(cmd *cobra.Command) (*appEnv, error) {
	printer := newPrinter(cmd)

	cfg, err := config.Load(config.FilePath())
	if err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return nil, sysErr
	}
	cfg.ApplyEnv()
	if root := lookupFlag(cmd, "root"); root != "" {
		cfg.Root = root
	}

	logger := logging.New(lookupFlag(cmd, "verbose") == "true", cmd.ErrOrStderr())
	logger.Debug("resolved config",
		zap.String("config_file", config.FilePath()),
		zap.String("root", cfg.Root),
		zap.String("remote", cfg.Remote))

	return &appEnv{
		cfg:     cfg,
		store:   record.NewStore(cfg.Root, cfg.Layout, logger),
		logger:  logger,
		printer: printer,
	}, nil
}

// today returns the current calendar date.
func today() time.Time {
	return record.Day(time.Now())
}

// resolveDateArg parses an optional date argument, defaulting to today.
func resolveDateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return today(), nil
	}
	return record.ParseDate(args[0])
}
