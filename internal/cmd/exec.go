package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/githooks/internal/log"
)

// Run executes a command and returns stderr in the error message if it fails
func Run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return &stderrError{msg: errMsg, err: err}
		}
		return err
	}
	return nil
}

// Output executes a command and returns stdout, with stderr in error if it fails
func Output(cmd *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, &stderrError{msg: errMsg, err: err}
		}
		return nil, err
	}
	return output, nil
}

// stderrError reports a command's stderr while keeping the underlying
// *exec.ExitError reachable through errors.As.
type stderrError struct {
	msg string
	err error
}

func (e *stderrError) Error() string { return e.msg }
func (e *stderrError) Unwrap() error { return e.err }

// RunContext runs name with args in dir, logging the command in verbose mode.
// A cancelled context is reported as the context error.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := Run(c)
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// OutputContext is like RunContext but returns stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := Output(c)
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return out, err
}

// ExitCode extracts the process exit status from err.
// Returns 0 for nil and 1 for errors that carry no status (e.g. start failures).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
