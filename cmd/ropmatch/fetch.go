package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ib-77/ropmatch/pkg/rop/api"
	"github.com/ib-77/ropmatch/pkg/rop/codec"
	"github.com/ib-77/ropmatch/pkg/rop/config"
)

func runFetch(args []string, stdout, stderr io.Writer) error {
	var configPath, preset, method, data string
	var lines int
	var verbose bool

	flagSet := pflag.NewFlagSet("ropmatch fetch", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML or JSONC config file")
	flagSet.StringVarP(&preset, "preset", "p", "data", "preset: without-ping, data or all")
	flagSet.StringVarP(&method, "method", "X", http.MethodGet, "GET or POST")
	flagSet.StringVarP(&data, "data", "d", "", "JSON body for POST")
	flagSet.IntVar(&lines, "lines", 0, "concurrent requests (default from config)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	urls := flagSet.Args()
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if lines <= 0 {
		lines = cfg.Batch.Lines
	}

	logger := newLogger(stderr, verbose)
	client, err := api.NewClient(cfg.Client, logger)
	if err != nil {
		return err
	}

	var body any
	if data != "" {
		if body, err = codec.DecodeJSON([]byte(data)); err != nil {
			return fmt.Errorf("--data: %w", err)
		}
	}

	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return fmt.Errorf("unsupported method %q", method)
	}
	call := func(ctx context.Context, args any) (api.Response, error) {
		return client.Do(ctx, method, args.(string), body)
	}

	work, err := presetWork(api.NewPresets(cfg.Presets), preset, call)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputs := make([]any, len(urls))
	for i, u := range urls {
		inputs[i] = u
	}

	failed := 0
	for _, outcome := range api.Batch(ctx, work, inputs, lines) {
		if outcome.OK() {
			fmt.Fprintf(stdout, "%s\t%s\n", outcome.Input, codec.Stringify(outcome.Value))
			continue
		}
		failed++
		logger.Debug("fetch failed", "url", outcome.Input, "error", outcome.Err)
		fmt.Fprintf(stdout, "%s\terror: %v\n", outcome.Input, outcome.Err)
	}

	if failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

func presetWork(presets api.Presets, name string, call api.APICall) (api.Work, error) {
	switch name {
	case "without-ping":
		return presets.WithoutPingWork(call), nil
	case "data":
		return presets.ReturnDataWork(call), nil
	case "all":
		return presets.ReturnAllWork(call), nil
	}
	return nil, fmt.Errorf("unknown preset %q (want without-ping, data or all)", name)
}
