package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dereplicator-adapter/internal/config"
	xlog "dereplicator-adapter/internal/log"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// resultFileName is the matches table the external tool writes into its -o directory.
const resultFileName = "significant_matches.tsv"

// State is a step of the invocation lifecycle.
type State int

const (
	StateInit State = iota
	StateValidated
	StateExecutableResolved
	StateScratchCreated
	StateProcessRan
	StateResultCollected
	StateDone
	StateFailed
)

var stateNames = [...]string{"init", "validated", "executable-resolved", "scratch-created", "process-ran", "result-collected", "done", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type runner struct {
	cfg      config.Config
	opts     Options
	log      zerolog.Logger
	resolver PathResolver
	proc     processRunner
	state    State
	scratch  string
	stats    runStats
}

type runStats struct {
	resultBytes int64
	result      ProcessResult
}

// newRunner builds a runner; in debug mode child output is also copied to stream.
func newRunner(cfg config.Config, opts Options, logger zerolog.Logger, stream io.Writer) *runner {
	l := xlog.WithComponent(logger, "invoker").With().Str("run", uuid.NewString()).Logger()
	r := &runner{
		cfg:      cfg,
		opts:     opts,
		log:      l,
		resolver: osPathResolver{},
	}
	if opts.Debug || cfg.Debug {
		r.proc.Stream = stream
	}
	return r
}

func (r *runner) Execute(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			r.transition(StateFailed)
			r.log.Debug().Err(err).Str("exit_code", ExitCodeFor(err).String()).Msg("run failed")
			return
		}
		r.transition(StateDone)
	}()

	req := r.opts.request(r.cfg)
	r.log.Debug().Str("in", req.SpectraPath).Str("database", req.DatabasePath).Str("out", req.OutputPath).Msg("Starting Dereplicator adapter")

	if err := validateRequest(req); err != nil {
		return err
	}
	if err := validateFormats(req); err != nil {
		return err
	}
	if err := r.validateTmpDir(); err != nil {
		return err
	}
	r.transition(StateValidated)
	r.reportDatabase(req.DatabasePath)

	executable := resolveExecutable(r.resolver, req.ExecutablePath)
	if executable == "" {
		return &ConfigError{Kind: ErrMissingExecutable, Option: "executable", Detail: fmt.Sprintf("%q", req.ExecutablePath)}
	}
	r.transition(StateExecutableResolved)

	scratch, err := os.MkdirTemp(r.opts.TmpDir, "dereplicator-adapter-")
	if err != nil {
		return &scratchError{err: err}
	}
	defer r.cleanupPath(scratch)
	r.scratch = scratch
	r.transition(StateScratchCreated)

	args := buildArguments(req, scratch)
	r.log.Debug().Str("executable", executable).Strs("args", args).
		Msg("Going to execute: " + executable + " " + strings.Join(args, " "))

	result, err := r.proc.run(ctx, executable, args)
	r.stats.result = result
	if err != nil {
		return err
	}
	r.transition(StateProcessRan)
	r.log.Debug().Dur("duration", result.Duration).Msg("Dereplicator finished")

	if err := r.collect(scratch, req.OutputPath); err != nil {
		return err
	}
	r.transition(StateResultCollected)

	r.log.Info().Int64("bytes", r.stats.resultBytes).Msg("Everything is fine! Results are in " + req.OutputPath)
	return nil
}

func (r *runner) transition(next State) {
	r.log.Debug().Stringer("from", r.state).Stringer("to", next).Msg("state")
	r.state = next
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.SpectraPath) == "" {
		return &ConfigError{Kind: ErrMissingInput, Option: "in"}
	}
	if strings.TrimSpace(req.DatabasePath) == "" {
		return &ConfigError{Kind: ErrMissingDatabase, Option: "database"}
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return &ConfigError{Kind: ErrMissingOutput, Option: "out"}
	}
	return nil
}

func (r *runner) validateTmpDir() error {
	if r.opts.TmpDir == "" {
		r.opts.TmpDir = r.cfg.TmpDir
	}
	if r.opts.TmpDir == "" {
		return nil
	}
	if !filepath.IsAbs(r.opts.TmpDir) {
		return &ConfigError{Kind: fmt.Errorf("tmp-dir must be absolute: %q", r.opts.TmpDir), Option: "tmp-dir"}
	}
	return nil
}

func (r *runner) reportDatabase(dir string) {
	summary, err := inspectDatabase(dir)
	if err != nil {
		r.log.Warn().Err(err).Msg("could not inspect database")
		return
	}
	if !summary.exists {
		r.log.Warn().Str("database", dir).Msg("database directory not found; leaving the check to Dereplicator")
		return
	}
	if !summary.libraryInfo {
		r.log.Warn().Str("database", dir).Msg("database has no " + libraryInfoName)
	}
	if summary.structures == 0 {
		r.log.Warn().Str("database", dir).Msg("database has no MOL structures")
	}
	r.log.Debug().Int("structures", summary.structures).Bool("library_info", summary.libraryInfo).Msg("database inspected")
}

// buildArguments returns the complete argument vector passed to the external tool.
func buildArguments(req Request, scratchDir string) []string {
	return []string{req.SpectraPath, "-o", scratchDir, "--db-path", req.DatabasePath}
}

func (r *runner) collect(scratchDir, outputPath string) error {
	n, err := collectResult(scratchDir, outputPath)
	if err != nil {
		return err
	}
	r.stats.resultBytes = n
	return nil
}

// collectResult replaces outputPath with the matches table from scratchDir.
// outputPath is left alone when the table was never written.
func collectResult(scratchDir, outputPath string) (int64, error) {
	src := filepath.Join(scratchDir, resultFileName)
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &IOError{Kind: ErrSourceMissing, Path: src}
		}
		return 0, &IOError{Kind: ErrCopyFailed, Path: src, Err: err}
	}
	defer in.Close()

	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, &IOError{Kind: ErrCopyFailed, Path: outputPath, Err: err}
	}

	n, err := copyFile(in, outputPath, 0o644)
	if err != nil {
		return 0, &IOError{Kind: ErrCopyFailed, Path: outputPath, Err: err}
	}
	return n, nil
}

func copyFile(in io.Reader, dst string, mode os.FileMode) (int64, error) {
	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(mode))
	if err != nil {
		return 0, err
	}
	defer pending.Cleanup()

	n, err := io.Copy(pending, in)
	if err != nil {
		return 0, err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *runner) cleanupPath(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("failed to clean up")
		return
	}
	r.log.Debug().Str("path", path).Msg("scratch directory removed")
}
