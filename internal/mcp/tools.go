package mcp

import (
	"context"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/dailylog/internal/git"
	"github.com/gorewood/dailylog/internal/record"
)

// now is replaced in tests.
var now = time.Now

// resolveDate parses an optional YYYY-MM-DD date, defaulting to today.
func resolveDate(text string) (time.Time, error) {
	if text == "" {
		return record.Day(now()), nil
	}
	return record.ParseDate(text)
}

// FieldValue is one detail of a record.
type FieldValue struct {
	Text    string `json:"text"    jsonschema:"detail text"`
	Present bool   `json:"present" jsonschema:"whether the record has this section"`
}

// --- Show tool ---

// ShowInput is the input for the show tool.
type ShowInput struct {
	Date string `json:"date,omitempty" jsonschema:"record date as YYYY-MM-DD (default today)"`
}

// ShowOutput is the output for the show tool.
type ShowOutput struct {
	Date    string     `json:"date"    jsonschema:"record date"`
	Path    string     `json:"path"    jsonschema:"record file path"`
	Exists  bool       `json:"exists"  jsonschema:"whether a record file exists for the date"`
	Tech    FieldValue `json:"tech"    jsonschema:"tech detail"`
	Fitness FieldValue `json:"fitness" jsonschema:"fitness detail"`
	English FieldValue `json:"english" jsonschema:"english detail"`
}

func handleShow(svc *Service) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		date, err := resolveDate(input.Date)
		if err != nil {
			return nil, ShowOutput{}, err
		}

		details, err := svc.Store.LoadDefaults(date)
		if err != nil {
			return nil, ShowOutput{}, err
		}

		value := func(f record.Field) FieldValue {
			v := details.Get(f)
			return FieldValue{Text: v.Text, Present: v.Present}
		}
		return nil, ShowOutput{
			Date:    date.Format(record.InputLayout),
			Path:    svc.Store.Path(date),
			Exists:  svc.Store.Exists(date),
			Tech:    value(record.Tech),
			Fitness: value(record.Fitness),
			English: value(record.English),
		}, nil
	}
}

// --- Log tool ---

// LogInput is the input for the log tool.
type LogInput struct {
	Date    string `json:"date,omitempty"    jsonschema:"record date as YYYY-MM-DD (default today)"`
	Tech    string `json:"tech,omitempty"    jsonschema:"tech detail; empty keeps the recorded value"`
	Fitness string `json:"fitness,omitempty" jsonschema:"fitness detail; empty keeps the recorded value"`
	English string `json:"english,omitempty" jsonschema:"english detail; empty keeps the recorded value"`
	Publish bool   `json:"publish,omitempty" jsonschema:"git add, commit and push the record after writing"`
}

// LogOutput is the output for the log tool.
type LogOutput struct {
	Date      string        `json:"date"            jsonschema:"record date"`
	Path      string        `json:"path"            jsonschema:"record file path"`
	Entry     record.Entry  `json:"entry"           jsonschema:"the fields written"`
	Published bool          `json:"published"       jsonschema:"whether every publish step succeeded"`
	Steps     []StepSummary `json:"steps,omitempty" jsonschema:"git steps run while publishing"`
}

// StepSummary reports one git step run while publishing.
type StepSummary struct {
	Name     string `json:"name"      jsonschema:"step name: add, commit or push"`
	ExitCode int    `json:"exit_code" jsonschema:"git exit status"`
	Output   string `json:"output"    jsonschema:"git's diagnostic or standard output"`
}

func summarizeSteps(results []git.StepResult) []StepSummary {
	out := make([]StepSummary, 0, len(results))
	for _, res := range results {
		out = append(out, StepSummary{Name: res.Name, ExitCode: res.ExitCode, Output: res.Diagnostic()})
	}
	return out
}

func handleLog(svc *Service) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, LogOutput, error) {
		date, err := resolveDate(input.Date)
		if err != nil {
			return nil, LogOutput{}, err
		}

		defaults, err := svc.Store.LoadDefaults(date)
		if err != nil {
			return nil, LogOutput{}, err
		}

		entry := record.Merge(defaults, record.Entry{
			Date:    date,
			Tech:    input.Tech,
			Fitness: input.Fitness,
			English: input.English,
		})
		path, err := svc.Store.Save(entry)
		if err != nil {
			return nil, LogOutput{}, err
		}

		out := LogOutput{
			Date:  date.Format(record.InputLayout),
			Path:  path,
			Entry: entry,
		}
		if !input.Publish {
			return nil, out, nil
		}

		pipeline := git.NewPipeline(svc.Store.Root(), svc.Exec, nil)
		steps := git.PublishSteps(filepath.Base(path), record.CommitMessage(date), svc.Remote)
		results, err := pipeline.Run(ctx, steps)
		out.Steps = summarizeSteps(results)
		if err != nil {
			return nil, out, err
		}
		out.Published = true
		return nil, out, nil
	}
}
