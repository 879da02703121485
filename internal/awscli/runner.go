// Package awscli shells out to the AWS command line tool.
package awscli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ec2ctl-io/ec2ctl/internal/term"
)

// DefaultPath is the binary executed when Path is empty.
const DefaultPath = "aws"

// Runner executes AWS CLI commands built from structured argument vectors.
// Arguments are passed to the process verbatim; nothing is ever routed
// through a shell. The zero value runs "aws" from PATH, prompts on stderr
// and reads confirmations from stdin.
type Runner struct {
	// Path is the aws binary to execute.
	Path string
	// BaseArgs are prepended to every invocation, e.g. --region.
	BaseArgs []string
	// In is the confirmation input stream.
	In io.Reader
	// Diag receives confirmation prompts.
	Diag io.Writer
	// Log receives progress and echoed command output.
	Log *slog.Logger
	// AutoApprove skips interactive confirmation.
	AutoApprove bool
}

// Run executes the CLI with args appended to BaseArgs and returns the
// captured stdout. With confirm set the full command line is shown to the
// operator first and term.ErrDeclined aborts before anything is executed.
// A non-zero exit status of the CLI itself is not an error: stdout is
// returned as captured and callers judge the invocation by its content.
// Failing to launch the binary, or a cancelled context, is an error.
func (r *Runner) Run(ctx context.Context, args []string, confirm, logOutput bool) (string, error) {
	argv := append(append([]string{}, r.BaseArgs...), args...)
	line := strings.Join(append([]string{r.path()}, argv...), " ")

	if confirm && !r.AutoApprove {
		if err := term.Confirm(r.in(), r.diag(), line); err != nil {
			return "", err
		}
	}

	r.log().Debug("running command", "cmd", line)
	out, err := exec.CommandContext(ctx, r.path(), argv...).Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("run %s: %w", r.path(), ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %s: %w", r.path(), err)
		}
		// The CLI exited non-zero. Its stdout stays authoritative; stderr
		// goes to diagnostics only.
		r.log().Warn("command exited non-zero",
			"cmd", line,
			"stderr", strings.TrimSpace(string(exitErr.Stderr)))
	}

	if logOutput {
		r.log().Info("command output", "output", string(out))
	}
	return string(out), nil
}

func (r *Runner) path() string {
	if r.Path != "" {
		return r.Path
	}
	return DefaultPath
}

func (r *Runner) in() io.Reader {
	if r.In != nil {
		return r.In
	}
	return os.Stdin
}

func (r *Runner) diag() io.Writer {
	if r.Diag != nil {
		return r.Diag
	}
	return os.Stderr
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
