package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/record"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded days",
		Long: `List the days that have a record, newest first, with the details each
record holds.

Examples:
  dailylog list
  dailylog list --last 7
  dailylog list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, last)
		},
	}

	cmd.Flags().IntVar(&last, "last", 0, "Show only the N most recent days (0 for all)")
	return cmd
}

// listItem is the JSON form of one listed record.
type listItem struct {
	Date    string            `json:"date"`
	Path    string            `json:"path"`
	Details map[string]string `json:"details"`
}

func runList(cmd *cobra.Command, last int) error {
	env, err := loadAppEnv(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	dates, err := env.store.List()
	if err != nil {
		printer.Error(err)
		return err
	}
	if last > 0 && len(dates) > last {
		dates = dates[:last]
	}

	items := make([]listItem, 0, len(dates))
	for _, date := range dates {
		details, err := env.store.LoadDefaults(date)
		if err != nil {
			printer.Error(err)
			return err
		}
		items = append(items, listItem{
			Date:    date.Format(record.InputLayout),
			Path:    env.store.Path(date),
			Details: details.Map(),
		})
	}

	if printer.IsJSON() {
		return printer.WriteJSON(items)
	}

	if len(items) == 0 {
		printer.Println("No records in " + env.store.Root())
		return nil
	}

	layout := env.store.Codec().Layout()
	headers := []string{"DATE"}
	for _, f := range record.Fields {
		headers = append(headers, layout.Heading(f))
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := []string{item.Date}
		for _, f := range record.Fields {
			row = append(row, presence(item.Details, f))
		}
		rows = append(rows, row)
	}
	printer.Table(headers, rows)
	return nil
}

// presence summarizes a detail for the list table.
func presence(details map[string]string, f record.Field) string {
	text, ok := details[f.Key()]
	switch {
	case !ok:
		return "-"
	case text == "":
		return "empty"
	default:
		return "yes"
	}
}
