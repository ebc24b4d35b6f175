package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/ib-77/ropmatch/pkg/rop/codec"
	"github.com/ib-77/ropmatch/pkg/rop/compare"
)

func runMatch(args []string, stdin io.Reader, stdout io.Writer) error {
	var testFlag, subjectFlag, fileFlag, ambientFlag, atFlag string

	flagSet := pflag.NewFlagSet("ropmatch match", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&testFlag, "test", "", "test as JSON (number, boolean, object, string); non-JSON text is an accessor path")
	flagSet.StringVar(&subjectFlag, "subject", "", "subject as JSON")
	flagSet.StringVarP(&fileFlag, "file", "f", "", "read the subject from a file, - for stdin")
	flagSet.StringVar(&ambientFlag, "ambient", "", "ambient value for this. paths, as JSON")
	flagSet.StringVar(&atFlag, "at", "", "gjson path selecting the part of the subject document to test")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if !flagSet.Changed("test") {
		return fmt.Errorf("--test is required")
	}

	raw, err := readSubject(subjectFlag, fileFlag, stdin)
	if err != nil {
		return err
	}

	subject, err := selectSubject(raw, atFlag)
	if err != nil {
		return err
	}

	var ambient any
	if ambientFlag != "" {
		if ambient, err = codec.DecodeJSON([]byte(ambientFlag)); err != nil {
			return fmt.Errorf("--ambient: %w", err)
		}
	}

	matched := compare.MatchIn(parseTest(testFlag), subject, ambient)
	fmt.Fprintln(stdout, matched)
	if !matched {
		return exitError{code: 1}
	}
	return nil
}

// parseTest reads a test from the command line. JSON values are used as
// decoded; anything that is not JSON is an accessor path as written.
func parseTest(raw string) any {
	test, err := codec.DecodeJSON([]byte(raw))
	if err != nil {
		return raw
	}
	return test
}

func readSubject(inline, file string, stdin io.Reader) ([]byte, error) {
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("--subject and --file are mutually exclusive")
	case inline != "":
		return []byte(inline), nil
	case file == "" || file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading subject: %w", err)
	}
	return data, nil
}

// selectSubject decodes the subject document, narrowed to the gjson path at
// when one is given. A path that selects nothing yields a nil subject.
func selectSubject(raw []byte, at string) (any, error) {
	if at != "" {
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("subject is not valid JSON")
		}
		selected := gjson.GetBytes(raw, at)
		if !selected.Exists() {
			return nil, nil
		}
		raw = []byte(selected.Raw)
	}

	subject, err := codec.DecodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	return subject, nil
}
