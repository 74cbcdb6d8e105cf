package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/export"
	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// exportFlags holds the flags for the export command.
type exportFlags struct {
	format string
	out    string
	since  string
	until  string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as JSON or markdown pages",
		Long: `Export records, newest first, as JSON or as markdown pages with YAML
frontmatter.

Without --out, everything is written to stdout. With --out, one file per day is
written into that directory (YYYY-MM-DD.json or YYYY-MM-DD.md).

Examples:
  dailylog export                                   # JSON array to stdout
  dailylog export --since 2024-03-01 --until 2024-03-31
  dailylog export --format md --out site/content/daily`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "Output format: json or md")
	cmd.Flags().StringVar(&flags.out, "out", "", "Directory to write one file per day into")
	cmd.Flags().StringVar(&flags.since, "since", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.until, "until", "", "Last day to include (YYYY-MM-DD)")
	return cmd
}

func runExport(cmd *cobra.Command, flags *exportFlags) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	since, until, err := parseRange(flags.since, flags.until)
	if err != nil {
		printer.Error(err)
		return err
	}
	format := strings.ToLower(flags.format)
	if format != "json" && format != "md" {
		userErr := output.NewUserErrorf("unknown format %q: expected json or md", flags.format)
		printer.Error(userErr)
		return userErr
	}

	items, err := export.Load(env.store)
	if err != nil {
		printer.Error(err)
		return err
	}
	items = export.Between(items, since, until)
	layout := env.store.Codec().Layout()

	if flags.out == "" {
		if format == "json" {
			return export.FormatJSON(printer, items)
		}
		for i, item := range items {
			if i > 0 {
				printer.Println()
			}
			printer.Print("%s", export.FormatMarkdown(item, layout))
		}
		return nil
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		sysErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(sysErr)
		return sysErr
	}
	if format == "json" {
		err = export.WriteJSONFiles(items, flags.out)
	} else {
		err = export.WriteMarkdownFiles(items, layout, flags.out)
	}
	if err != nil {
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{
		"status":  "ok",
		"count":   len(items),
		"dir":     flags.out,
		"message": "exported " + pluralRecords(len(items)) + " to " + flags.out,
	})
}

// parseRange parses optional --since / --until dates.
func parseRange(sinceText, untilText string) (time.Time, time.Time, error) {
	var since, until time.Time
	var err error
	if sinceText != "" {
		if since, err = record.ParseDate(sinceText); err != nil {
			return since, until, err
		}
	}
	if untilText != "" {
		if until, err = record.ParseDate(untilText); err != nil {
			return since, until, err
		}
	}
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		return since, until, output.NewUserErrorf("--until %s is before --since %s", untilText, sinceText)
	}
	return since, until, nil
}

func pluralRecords(n int) string {
	if n == 1 {
		return "1 record"
	}
	return strconv.Itoa(n) + " records"
}
