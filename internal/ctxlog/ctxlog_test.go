package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_ReturnsCarriedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Debug("declaration found", "name", "startTimer")

	assert.Contains(t, buf.String(), "declaration found")
	assert.Contains(t, buf.String(), "name=startTimer")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestNew_InfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
