package xslog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelEnvKey  = "LOG_LEVEL"
	FormatEnvKey = "LOG_FORMAT"
)

// Format selects the handler. JSON suits the services; text is easier to
// tail next to the TUI.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configure NewLogger. The zero value logs JSON at info.
type Options struct {
	Level  slog.Level
	Format Format
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", s)
	}
	return l, nil
}

// ParseFormat accepts json or text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return FormatJSON, fmt.Errorf("invalid log format %q (valid: json, text)", s)
	}
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT. Unset or invalid values
// fall back to info and JSON.
func OptionsFromEnv() Options {
	var opts Options
	if s := os.Getenv(LevelEnvKey); s != "" {
		opts.Level, _ = ParseLevel(s)
	}
	if s := os.Getenv(FormatEnvKey); s != "" {
		opts.Format, _ = ParseFormat(s)
	}
	return opts
}

func NewLogger(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Format == FormatText {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func NewLoggerFromEnv(w io.Writer) *slog.Logger {
	return NewLogger(w, OptionsFromEnv())
}
