package app

import (
	"errors"
	"fmt"
)

// ExitCode is the process exit status reported to the caller. Values follow
// the OpenMS TOPP tool numbering.
type ExitCode int

const (
	ExecutionOK             ExitCode = 0
	CannotWriteOutputFile   ExitCode = 5
	IllegalParameters       ExitCode = 6
	MissingParameters       ExitCode = 7
	UnknownError            ExitCode = 8
	ExternalProgramError    ExitCode = 9
	InternalError           ExitCode = 12
	UnexpectedResult        ExitCode = 13
	ExternalProgramNotFound ExitCode = 14
)

func (c ExitCode) String() string {
	switch c {
	case ExecutionOK:
		return "EXECUTION_OK"
	case CannotWriteOutputFile:
		return "CANNOT_WRITE_OUTPUT_FILE"
	case IllegalParameters:
		return "ILLEGAL_PARAMETERS"
	case MissingParameters:
		return "MISSING_PARAMETERS"
	case ExternalProgramError:
		return "EXTERNAL_PROGRAM_ERROR"
	case InternalError:
		return "INTERNAL_ERROR"
	case UnexpectedResult:
		return "UNEXPECTED_RESULT"
	case ExternalProgramNotFound:
		return "EXTERNAL_PROGRAM_NOTFOUND"
	default:
		return "UNKNOWN_ERROR"
	}
}

var (
	ErrMissingInput      = errors.New("no input file (spectra) given")
	ErrMissingDatabase   = errors.New("no database given")
	ErrMissingOutput     = errors.New("no output file (results) given")
	ErrMissingExecutable = errors.New("executable of Dereplicator could not be found; add it to PATH or provide -executable")
	ErrInvalidFormat     = errors.New("unsupported file format")

	ErrSpawnFailed = errors.New("external tool could not be started")
	ErrNonZeroExit = errors.New("external tool exited with failure")
	ErrInterrupted = errors.New("external tool run interrupted")

	ErrSourceMissing = errors.New("result file not produced")
	ErrCopyFailed    = errors.New("copy result failed")
)

// ConfigError reports a missing or malformed option.
type ConfigError struct {
	Kind   error
	Option string
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: -%s %s", e.Kind, e.Option, e.Detail)
	}
	return e.Kind.Error()
}

func (e *ConfigError) Unwrap() error { return e.Kind }

// ProcessError reports a failure to start the external tool, a failed run,
// or a run cut short by cancellation.
type ProcessError struct {
	Kind     error
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := e.Kind.Error()
	if errors.Is(e.Kind, ErrNonZeroExit) {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s\nStderr: %s", msg, e.Stderr)
	}
	return msg
}

func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IOError reports a problem relocating the result file.
type IOError struct {
	Kind error
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

func (e *IOError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ExitCodeFor maps an error returned by Run to the exit status of the adapter.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExecutionOK
	}

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if errors.Is(cfgErr.Kind, ErrMissingExecutable) {
			return MissingParameters
		}
		return IllegalParameters
	}

	var procErr *ProcessError
	if errors.As(err, &procErr) {
		if errors.Is(procErr.Kind, ErrSpawnFailed) {
			return ExternalProgramNotFound
		}
		// TOPP has no interrupt status; an interrupted run counts as a failed external step.
		return ExternalProgramError
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		if errors.Is(ioErr.Kind, ErrSourceMissing) {
			return UnexpectedResult
		}
		return CannotWriteOutputFile
	}

	var scratchErr *scratchError
	if errors.As(err, &scratchErr) {
		return InternalError
	}

	return UnknownError
}

type scratchError struct {
	err error
}

func (e *scratchError) Error() string { return fmt.Sprintf("create scratch directory: %v", e.err) }

func (e *scratchError) Unwrap() error { return e.err }
