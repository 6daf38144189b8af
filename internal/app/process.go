package app

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// ProcessResult contains the outcome of one external tool run. Stdout and
// Stderr hold at most the last outputTailBytes of each stream.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// processRunner spawns the external tool and waits for it. When Stream is
// set, child output is copied there as well as captured.
type processRunner struct {
	Stream io.Writer
}

const (
	outputTailBytes = 4 << 10
	// waitDelay bounds how long Wait keeps draining pipes after cancellation.
	waitDelay = 5 * time.Second
)

func (p processRunner) run(ctx context.Context, executable string, args []string) (ProcessResult, error) {
	start := time.Now()
	var result ProcessResult

	//nolint:gosec // G204: launching the configured external tool is the purpose of the adapter
	cmd := exec.CommandContext(ctx, executable, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	stdout := &tailBuffer{max: outputTailBytes}
	stderr := &tailBuffer{max: outputTailBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if p.Stream != nil {
		cmd.Stdout = io.MultiWriter(stdout, p.Stream)
		cmd.Stderr = io.MultiWriter(stderr, p.Stream)
	}

	if err := cmd.Start(); err != nil {
		result.ExitCode = -1
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, &ProcessError{Kind: ErrInterrupted, ExitCode: -1, Err: ctxErr}
		}
		return result, &ProcessError{Kind: ErrSpawnFailed, ExitCode: -1, Err: err}
	}

	err := cmd.Wait()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		procErr := &ProcessError{Kind: ErrNonZeroExit, ExitCode: result.ExitCode, Stderr: strings.TrimSpace(result.Stderr)}
		if result.ExitCode == -1 {
			procErr.Err = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			procErr.Kind = ErrInterrupted
			procErr.Err = ctxErr
		}
		return result, procErr
	}

	return result, nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max       int
	buf       []byte
	truncated bool
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
		b.truncated = true
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	if b.truncated {
		return "..." + string(b.buf)
	}
	return string(b.buf)
}
