// Package logging builds the zap logger used by the CLI and TUI. Logs go to a file
// because the TUI owns the terminal.
package logging

import (
        "fmt"
        "os"
        "path/filepath"
        "strings"

        "go.uber.org/zap"
        "go.uber.org/zap/zapcore"
)

type Options struct {
        // Path is the log file. Empty means stderr.
        Path    string
        Level   string
        Verbose bool
}

// New builds a JSON production logger. Verbose forces debug level.
func New(opts Options) (*zap.Logger, error) {
        level, err := ParseLevel(opts.Level)
        if err != nil {
                return nil, err
        }
        config := zap.NewProductionConfig()
        config.Level = zap.NewAtomicLevelAt(level)
        if opts.Verbose {
                config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
        }
        config.EncoderConfig.TimeKey = "ts"
        config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
        config.Sampling = nil
        if p := strings.TrimSpace(opts.Path); p != "" {
                if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
                        return nil, fmt.Errorf("create log dir: %w", err)
                }
                config.OutputPaths = []string{p}
                config.ErrorOutputPaths = []string{p}
        }
        logger, err := config.Build()
        if err != nil {
                return nil, fmt.Errorf("failed to initialize logger: %w", err)
        }
        return logger, nil
}

// ParseLevel accepts debug|info|warn|error; empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
        s = strings.TrimSpace(s)
        if s == "" {
                return zapcore.InfoLevel, nil
        }
        var l zapcore.Level
        if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
                return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", s)
        }
        return l, nil
}
