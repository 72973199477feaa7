package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// InitLogger opens (appending) the log file at path and returns a logger writing
// to it at level. The terminal belongs to the UI, so nothing goes to stderr. An
// unparseable level falls back to info. The returned closer releases the file.
func InitLogger(level, path string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(file).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "crm-table").
		Logger()
	return logger, file, nil
}

// LogPath returns the configured log file, or crmtable.log next to the config file.
func (s *Store) LogPath() string {
	if s.Config.Log.File != "" {
		return s.Config.Log.File
	}
	return filepath.Join(s.Dir(), "crmtable.log")
}
