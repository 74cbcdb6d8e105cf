package git

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gorewood/dailylog/internal/output"
)

// Step is one git invocation in a pipeline.
type Step struct {
	Name string
	Args []string
}

// StepResult is a Step together with what running it produced.
type StepResult struct {
	Name string `json:"name"`
	Result
}

// StepError reports the step that stopped a pipeline.
type StepError struct {
	Step StepResult
}

// Error implements the error interface.
func (e *StepError) Error() string {
	msg := e.Step.Diagnostic()
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.Step.ExitCode)
	}
	return fmt.Sprintf("git %s failed: %s", e.Step.Name, msg)
}

// PublishSteps returns the steps that share one record file: stage it, commit it
// with message, push. With a non-empty remote the push targets that remote;
// otherwise git's configured upstream is used.
func PublishSteps(file, message, remote string) []Step {
	push := []string{"push"}
	if remote != "" {
		push = append(push, remote)
	}
	return []Step{
		{Name: "add", Args: []string{"add", "--", file}},
		{Name: "commit", Args: []string{"commit", "-m", message}},
		{Name: "push", Args: push},
	}
}

// Pipeline runs steps in order in one directory, stopping at the first failure.
type Pipeline struct {
	dir    string
	exec   ExecFunc
	logger *zap.Logger
}

// NewPipeline creates a Pipeline running in dir.
// If exec is nil, Capture is used. If logger is nil, logging is disabled.
func NewPipeline(dir string, exec ExecFunc, logger *zap.Logger) *Pipeline {
	if exec == nil {
		exec = Capture
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{dir: dir, exec: exec, logger: logger}
}

// Run executes steps in order and returns the result of every step attempted.
// The first step that exits non-zero ends the run with an *output.ExitError
// (system error) wrapping a *StepError; later steps are never started.
func (p *Pipeline) Run(ctx context.Context, steps []Step) ([]StepResult, error) {
	results := make([]StepResult, 0, len(steps))

	for _, step := range steps {
		p.logger.Debug("running git step",
			zap.String("step", step.Name),
			zap.String("dir", p.dir),
			zap.String("args", strings.Join(step.Args, " ")))

		res, err := p.exec(ctx, p.dir, step.Args...)
		result := StepResult{Name: step.Name, Result: res}
		if err != nil {
			return results, err
		}
		results = append(results, result)

		p.logger.Debug("git step finished",
			zap.String("step", step.Name),
			zap.Int("exit_code", res.ExitCode))

		if !res.OK() {
			stepErr := &StepError{Step: result}
			return results, output.NewSystemErrorWithCause(stepErr.Error(), stepErr)
		}
	}

	return results, nil
}
