package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "quizlink", "production", "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Str("key", "quiz_id").Msg("storage read failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "storage read failed")
	assert.Contains(t, out, "quiz_id")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "quizlink", "production", "")

	dropped := FromContext(context.Background())
	dropped.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	ctx := IntoContext(context.Background(), logger)
	kept := FromContext(ctx)
	kept.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
