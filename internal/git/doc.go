// Package git runs git for the dailylog CLI by shelling out to the git
// executable.
//
// # Running Git Commands
//
// Capture runs one command in a directory and keeps everything it produced:
//
//	res, err := git.Capture(ctx, root, "status", "--short")
//	// res.Stdout, res.Stderr, res.ExitCode
//
// err is only set when git could not be run at all; a non-zero exit is reported
// through the result. RunContext is the shorthand that turns a non-zero exit into
// an *output.ExitError and returns trimmed stdout.
//
// # Publishing
//
// Publishing a record is an ordered Pipeline of Steps: stage the record file,
// commit it, push. The pipeline stops at the first step that fails and returns
// the results gathered so far together with an error carrying that step's
// diagnostic output:
//
//	pipeline := git.NewPipeline(root, nil, logger)
//	results, err := pipeline.Run(ctx, git.PublishSteps("2024_03_05.md", msg, ""))
package git
