package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// NewLogger builds the process logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Policy returns the text conversion policy. Validate has already rejected
// unknown values, so an unparsable value falls back to replacement.
func (h HostConfig) Policy() buffer.Policy {
	p, _ := buffer.ParsePolicy(h.InvalidUTF8)
	return p
}

// Mode returns FileMode as an os.FileMode.
func (h HostConfig) Mode() os.FileMode {
	return os.FileMode(h.FileMode).Perm()
}
