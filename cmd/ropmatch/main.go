// ropmatch evaluates match tests against JSON documents and runs the
// request presets against live endpoints.
//
//	ropmatch match --test '{"success":true}' --file body.json
//	ropmatch match --test 'data.items[0].id' --subject '{"data":{"items":[{"id":1}]}}'
//	ropmatch fetch --preset data https://api.example.com/items/5
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// exitError carries a process exit code without an error message, used for
// "ran fine, answer is no".
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func (e exitError) ExitCode() int {
	return e.code
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return exitError{code: 2}
	}

	switch args[0] {
	case "match":
		return runMatch(args[1:], stdin, stdout)
	case "fetch":
		return runFetch(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}
	return fmt.Errorf("unknown command %q (want match or fetch)", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: ropmatch <command> [flags]

commands:
  match   evaluate a test against a JSON subject, exit 1 when it does not match
  fetch   run a request preset against one or more URLs
`)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
