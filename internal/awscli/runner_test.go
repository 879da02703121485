package awscli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec2ctl-io/ec2ctl/internal/term"
)

func testRunner(path string, input string) (*Runner, *bytes.Buffer) {
	diag := &bytes.Buffer{}
	return &Runner{
		Path: path,
		In:   strings.NewReader(input),
		Diag: diag,
		Log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, diag
}

func TestRunner_CapturesStdout(t *testing.T) {
	r, _ := testRunner("echo", "")

	out, err := r.Run(context.Background(), []string{"hello", "world"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestRunner_BaseArgsComeFirst(t *testing.T) {
	r, _ := testRunner("echo", "")
	r.BaseArgs = []string{"--region", "eu-west-1"}

	out, err := r.Run(context.Background(), []string{"ec2", "describe-instances"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "--region eu-west-1 ec2 describe-instances\n", out)
}

func TestRunner_ExitStatusIgnored(t *testing.T) {
	r, _ := testRunner("sh", "")

	// stdout stays authoritative even when the command fails.
	out, err := r.Run(context.Background(), []string{"-c", "echo result; echo complaint >&2; exit 3"}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "result\n", out)
}

func TestRunner_LaunchFailure(t *testing.T) {
	r, _ := testRunner("/does/not/exist", "")

	_, err := r.Run(context.Background(), []string{"ec2"}, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/does/not/exist")
}

func TestRunner_ContextCancelled(t *testing.T) {
	r, _ := testRunner("echo", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, []string{"hello"}, false, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_ConfirmDeclined(t *testing.T) {
	// The path would fail to launch, so getting ErrDeclined back proves
	// nothing was executed.
	r, _ := testRunner("/does/not/exist", "n\n")

	_, err := r.Run(context.Background(), []string{"ec2", "stop-instances"}, true, false)
	assert.ErrorIs(t, err, term.ErrDeclined)
}

func TestRunner_ConfirmApproved(t *testing.T) {
	r, diag := testRunner("echo", "y\n")

	out, err := r.Run(context.Background(), []string{"ok"}, true, false)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Contains(t, diag.String(), "About to run: echo ok")
}

func TestRunner_ConfirmShowsFullCommandLine(t *testing.T) {
	r, diag := testRunner("echo", "n\n")
	r.BaseArgs = []string{"--profile", "prod"}

	_, err := r.Run(context.Background(), []string{"ec2", "stop-instances", "--force", "--instance-ids", "i-0abc"}, true, false)
	require.ErrorIs(t, err, term.ErrDeclined)
	assert.Contains(t, diag.String(), "echo --profile prod ec2 stop-instances --force --instance-ids i-0abc")
}

func TestRunner_AutoApprove(t *testing.T) {
	r, diag := testRunner("echo", "")
	r.AutoApprove = true

	out, err := r.Run(context.Background(), []string{"ok"}, true, false)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	// No prompt was written.
	assert.Empty(t, diag.String())
}
