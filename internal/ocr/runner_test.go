package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStreams(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := newExecRunner(logger)
	stdout, stderr, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)

	assert.Equal(t, "out\n", string(stdout))
	assert.Equal(t, "err\n", string(stderr))
	assert.Contains(t, logBuf.String(), "ocr.exec.ok", "runner logs through the injected logger")
}

func TestExecRunnerFailureLogsStderr(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := newExecRunner(logger)
	_, stderr, err := r.Run(context.Background(), "sh", "-c", "echo broken 1>&2; exit 3")
	require.Error(t, err)

	assert.Equal(t, "broken\n", string(stderr))
	assert.Contains(t, logBuf.String(), "ocr.exec.failed")
	assert.Contains(t, logBuf.String(), "broken")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("x", 20)
	got := truncate(long, 10)
	assert.Equal(t, strings.Repeat("x", 10)+"...(truncated)", got)
}
