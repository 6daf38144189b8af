package app

import (
	"context"
	"io"
	"os"
	"strings"

	"dereplicator-adapter/internal/config"
	xlog "dereplicator-adapter/internal/log"
)

// Options captures user-supplied CLI parameters before config/env enrichment.
type Options struct {
	In         string
	Database   string
	Out        string
	Executable string // empty means the configured default
	TmpDir     string
	Debug      bool
}

// Request is one invocation of the external tool. It is built once and not
// modified afterwards.
type Request struct {
	SpectraPath    string
	DatabasePath   string
	OutputPath     string
	ExecutablePath string
}

// Run is the entry point for the adapter workflow. The caller reports the
// returned error; logs and debug child output go to stderr.
func Run(ctx context.Context, opts Options) error {
	return run(ctx, opts, os.Stderr)
}

func run(ctx context.Context, opts Options, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return &ConfigError{Kind: err}
	}

	debug := opts.Debug || cfg.Debug
	logger := xlog.New(xlog.Config{Level: cfg.LogLevel, Debug: debug, Output: stderr})

	return newRunner(cfg, opts, logger, stderr).Execute(ctx)
}

func (o Options) request(cfg config.Config) Request {
	executable := strings.TrimSpace(o.Executable)
	if executable == "" {
		executable = cfg.Executable
	}
	return Request{
		SpectraPath:    strings.TrimSpace(o.In),
		DatabasePath:   strings.TrimSpace(o.Database),
		OutputPath:     strings.TrimSpace(o.Out),
		ExecutablePath: executable,
	}
}
