package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, slog.LevelError, LevelFromEnv())
}

func TestPrintfRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrintf(New(&buf, slog.LevelInfo))

	p.Debugf("hidden %d", 1)
	p.Infof("scenario %s ran", "Planned")
	p.Warnf("quarters %d", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "scenario Planned ran")
	assert.Contains(t, out, "quarters 7")
	assert.NotContains(t, out, "\x1b[", "Should not colorize a non-terminal writer")
}
