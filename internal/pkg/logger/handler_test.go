package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{Handler: log.NewJSONHandler(&buf, nil)})

	ctx := WithTraceID(context.Background(), "abc-123")
	l.InfoContext(ctx, "hello")
	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)

	buf.Reset()
	l.InfoContext(context.Background(), "no trace")
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestTeeHandlerOnlyForwardsTracedRecordsRemotely(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&TracedOnlyHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{Handler: tee}).With("service", "pulse")

	l.Info("startup")
	l.InfoContext(WithTraceID(context.Background(), "t-1"), "request")

	assert.Equal(t, 2, strings.Count(local.String(), "\n"))
	assert.Equal(t, 1, strings.Count(remote.String(), "\n"))
	assert.Contains(t, remote.String(), `"service":"pulse"`)
	assert.Contains(t, remote.String(), `"trace_id":"t-1"`)
}

func TestNewTraceContext(t *testing.T) {
	ctx := NewTraceContext(context.Background(), "job")
	assert.True(t, strings.HasPrefix(TraceID(ctx), "job-"))
	assert.Empty(t, TraceID(context.Background()))
}
