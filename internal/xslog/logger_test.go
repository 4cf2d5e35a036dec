package xslog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("Text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("xml")
	require.Error(t, err)
	assert.Equal(t, FormatJSON, f)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(LevelEnvKey, "debug")
	t.Setenv(FormatEnvKey, "text")

	assert.Equal(t, Options{Level: slog.LevelDebug, Format: FormatText}, OptionsFromEnv())

	t.Setenv(LevelEnvKey, "nonsense")
	t.Setenv(FormatEnvKey, "")
	assert.Equal(t, Options{Level: slog.LevelInfo, Format: ""}, OptionsFromEnv())
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{Level: slog.LevelWarn})
	logger.Info("dropped")
	logger.Warn("kept", Widget("leads"))

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"widget":"leads"`)

	buf.Reset()
	NewLogger(&buf, Options{Format: FormatText}).Info("hello", Count(3))
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "count=3")
}
