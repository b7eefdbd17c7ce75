package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New builds the process logger: human-readable console output on stderr,
// plus an optional append-only log file when path is non-empty.
func New(level, path string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", level, err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	var w io.Writer = console
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("opening log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, f)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ForRun returns a child logger tagged with a fresh run ID so that every
// line of one resolution pass can be correlated, and the ID itself.
func ForRun(log zerolog.Logger) (zerolog.Logger, string) {
	id := uuid.NewString()
	return log.With().Str("run_id", id).Logger(), id
}
