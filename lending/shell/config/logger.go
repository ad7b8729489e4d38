package config

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	// ErrUnknownLogLevel is returned for a level slog does not know.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrUnknownLogFormat is returned for a format other than text or json.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewLogger creates a slog.Logger writing to w in the configured level and format.
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.Level))); err != nil {
		return nil, errors.Join(ErrUnknownLogLevel, err)
	}

	options := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case LogFormatText, "":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, ErrUnknownLogFormat
	}
}
