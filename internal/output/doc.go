// Package output provides printing and exit-code handling for the dailylog CLI.
//
// Every command writes through a Printer, which renders either styled text for an
// operator at a terminal or a single JSON document when --json is set:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "wrote 2024_03_05.md"})
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: record written (and published, if asked)
//	output.ExitUserError   // 1: bad input, such as a malformed date
//	output.ExitSystemError // 2: I/O failure or a failed git step
//
// Errors built with NewUserError and NewSystemError carry their code, which main
// turns into the process exit status through GetExitCode.
package output
