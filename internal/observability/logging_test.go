package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextAccumulation(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-1")
	ctx = WithItem(ctx, "/about.md")
	ctx = WithRep(ctx, "default")

	lc := GetContext(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "/about.md", lc.Item)
	assert.Equal(t, "default", lc.Rep)
}

func TestWithItemDoesNotClobberRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithItem(ctx, "/a.md")

	lc := GetContext(ctx)
	assert.Equal(t, "run-1", lc.RunID)
	assert.Equal(t, "/a.md", lc.Item)
}

func TestEmptyContext(t *testing.T) {
	lc := GetContext(context.Background())
	assert.Equal(t, LogContext{}, lc)
}

func TestLogLinesCarryContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ctx := WithRunID(context.Background(), "run-42")
	ctx = WithItem(ctx, "/page.md")
	InfoContext(ctx, "compiling", slog.Int("depth", 2))

	line := buf.String()
	assert.Contains(t, line, "run.id=run-42")
	assert.Contains(t, line, "item=/page.md")
	assert.Contains(t, line, "depth=2")
	assert.Contains(t, line, "compiling")
}
