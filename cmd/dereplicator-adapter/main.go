package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dereplicator-adapter/internal/app"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(int(app.ExecutionOK))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(app.IllegalParameters))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx, opts)
	stop()

	os.Exit(int(report(os.Stderr, err)))
}

// report prints the diagnostic for a failed run regardless of the log level.
func report(w io.Writer, err error) app.ExitCode {
	code := app.ExitCodeFor(err)
	if err != nil {
		fmt.Fprintf(w, "Fatal error: %v (%s)\n", err, code)
	}
	return code
}

func parseFlags(args []string) (app.Options, error) {
	fs := flag.NewFlagSet("dereplicator-adapter", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	in := fs.String("in", "", "Input spectra file: mzXML, MGF, mzML or mzdata (required)")
	database := fs.String("database", "", "Molecular database directory with MOL structures and a library.info description (required)")
	out := fs.String("out", "", "Output file for identification results: csv, tsv or txt (required)")
	executable := fs.String("executable", "", "Dereplicator python wrapper; may be skipped if dereplicator.py is on PATH")
	tmpDir := fs.String("tmp-dir", "", "Parent directory for the scratch directory (absolute)")
	debug := fs.Bool("debug", false, "Log the full command line and show Dereplicator output")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -in <spectra> -database <dir> -out <file> [options]\n\n", fs.Name())
		fmt.Fprintln(fs.Output(), "Dereplication of peptidic natural products through database search of mass spectra.")
		fmt.Fprintln(fs.Output(), "Environment: DEREPLICATOR_EXECUTABLE, DEREPLICATOR_TMP_DIR, DEREPLICATOR_DEBUG and LOG_LEVEL are optional.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return app.Options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return app.Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	return app.Options{
		In:         strings.TrimSpace(*in),
		Database:   strings.TrimSpace(*database),
		Out:        strings.TrimSpace(*out),
		Executable: strings.TrimSpace(*executable),
		TmpDir:     strings.TrimSpace(*tmpDir),
		Debug:      *debug,
	}, nil
}
