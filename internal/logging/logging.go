package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls harness logging.
type Config struct {
	// Level is the minimum record level: debug, info, warn, error.
	Level string
	// Path is the log file; empty disables file logging entirely.
	Path string
	// MaxSizeBytes is the file size that triggers rotation.
	MaxSizeBytes int64
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
	// Stderr mirrors records to stderr alongside the file.
	Stderr bool
}

// DefaultConfig logs info and above to ~/.hcr/logs/hcrbench.log and stderr,
// rotating at 10 MiB with 5 backups.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		Path:         DefaultLogPath(),
		MaxSizeBytes: 10 << 20,
		MaxBackups:   5,
		Stderr:       true,
	}
}

// DebugConfig is DefaultConfig at debug level, for the --debug flag.
func DebugConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	return cfg
}

// Setup builds the harness logger — a JSON handler over the rotating log
// file, optionally mirrored to stderr — and installs it as the slog
// default so every package's structured events land in one place. The
// returned closer flushes and closes the file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	var sinks []io.Writer
	var file *logFile

	if cfg.Path != "" {
		f, err := openLogFile(cfg.Path, cfg.MaxSizeBytes, cfg.MaxBackups)
		if err != nil {
			return nil, nil, err
		}
		file = f
		sinks = append(sinks, f)
	}
	if cfg.Stderr || len(sinks) == 0 {
		sinks = append(sinks, os.Stderr)
	}

	handler := slog.NewJSONHandler(io.MultiWriter(sinks...), &slog.HandlerOptions{
		Level: Level(cfg.Level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	closer := func() {
		if file != nil {
			_ = file.Close()
		}
	}
	return logger, closer, nil
}

// Level parses a config level string, case-insensitively. Unknown values
// fall back to info rather than failing the run.
func Level(s string) slog.Level {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
