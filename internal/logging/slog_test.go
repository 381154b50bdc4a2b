package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextLogger(t *testing.T, lvl slog.Level) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: lvl})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_OneLinePerLevel(t *testing.T) {
	log, buf := newTextLogger(t, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "cart item added", "product", "mtb-trail-2024")
	log.Info(ctx, "order placed", "order", "o-1")
	log.Warn(ctx, "cart add failed", "status", 500)
	log.Error(ctx, "restore failed", "scope", "admin")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	want := []struct{ level, msg, attr string }{
		{"DEBUG", `msg="cart item added"`, "product=mtb-trail-2024"},
		{"INFO", `msg="order placed"`, "order=o-1"},
		{"WARN", `msg="cart add failed"`, "status=500"},
		{"ERROR", `msg="restore failed"`, "scope=admin"},
	}
	for i, w := range want {
		assert.Contains(t, lines[i], "level="+w.level)
		assert.Contains(t, lines[i], w.msg)
		assert.Contains(t, lines[i], w.attr)
	}
}

func TestSlogLogger_WithKeepsParentUntouched(t *testing.T) {
	log, buf := newTextLogger(t, slog.LevelInfo)
	ctx := context.Background()

	child := log.With("component", "http", "scope", "user")
	child.Info(ctx, "request", "method", "GET")
	log.Info(ctx, "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "component=http")
	assert.Contains(t, lines[0], "scope=user")
	assert.Contains(t, lines[0], "method=GET")
	assert.NotContains(t, lines[1], "component=")
}

func TestSlogLogger_BelowLevelIsDropped(t *testing.T) {
	log, buf := newTextLogger(t, slog.LevelWarn)

	log.Debug(context.TODO(), "noise")
	log.Info(context.TODO(), "noise")
	assert.Empty(t, buf.String())
}
