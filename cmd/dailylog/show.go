package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/dailylog/internal/output"
	"github.com/gorewood/dailylog/internal/record"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the record for a day",
		Long: `Show the details recorded for a day (default today).

Examples:
  dailylog show
  dailylog show 2024-03-05
  dailylog show 2024-03-05 --json
  dailylog show --field fitness       # print only that detail`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, field)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Print only one detail: tech, fitness or english")
	return cmd
}

func runShow(cmd *cobra.Command, args []string, fieldKey string) error {
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

	var field record.Field
	if fieldKey != "" {
		var ok bool
		if field, ok = record.ParseField(fieldKey); !ok {
			userErr := output.NewUserErrorf("unknown field %q: expected tech, fitness or english", fieldKey)
			printer.Error(userErr)
			return userErr
		}
	}

	data, err := env.store.Read(date)
	if err != nil {
		printer.Error(err)
		return err
	}
	details := env.store.Codec().Decode(data)

	if fieldKey != "" {
		return showField(printer, date, field, details.Get(field))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"date":    date.Format(record.InputLayout),
			"path":    env.store.Path(date),
			"details": details.Map(),
		})
	}

	layout := env.store.Codec().Layout()
	printer.Section(date.Format(record.HeaderLayout))
	for _, f := range record.Fields {
		v := details.Get(f)
		if !v.Present {
			printer.KeyValue(layout.Heading(f), "(missing)")
			continue
		}
		printer.KeyValue(layout.Heading(f), v.Text)
	}
	return nil
}

// showField prints the text of one detail. A missing detail is a user error so
// scripts can tell it from an empty one.
func showField(printer *output.Printer, date time.Time, field record.Field, v record.Value) error {
	if !v.Present {
		userErr := output.NewUserErrorf("record for %s has no %s detail", date.Format(record.InputLayout), field)
		printer.Error(userErr)
		return userErr
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"date":  date.Format(record.InputLayout),
			"field": field.Key(),
			"text":  v.Text,
		})
	}
	printer.Println(v.Text)
	return nil
}
