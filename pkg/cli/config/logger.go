package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration. Logs go to stderr unless --log-output
// names another destination.
type Logger struct {
	Level  string
	Format string
	Output string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("ZAPHIST_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       string(logging.FormatAuto),
			Sources:     cli.EnvVars("ZAPHIST_LOG_FORMAT"),
			Destination: &l.Format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log destination: stderr, stdout or a file path",
			Category:    "Logging",
			Value:       "stderr",
			Sources:     cli.EnvVars("ZAPHIST_LOG_OUTPUT"),
			Destination: &l.Output,
		},
	}
}

// Configure builds the logger. The returned closer releases a log file and is
// never nil.
func (l *Logger) Configure() (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(l.Format)
	if err != nil {
		return nil, nil, err
	}

	w, closer, err := l.writer()
	if err != nil {
		return nil, nil, err
	}

	return logging.NewLogger(level, w, format), closer, nil
}

func (l *Logger) writer() (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch l.Output {
	case "", "stderr", "-":
		return os.Stderr, noop, nil
	case "stdout":
		return os.Stdout, noop, nil
	default:
		f, err := os.OpenFile(l.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.Output))
		}
		return f, f.Close, nil
	}
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
		slog.String("output", l.Output),
	)
}
