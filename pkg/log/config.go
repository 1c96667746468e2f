package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config declaratively describes a logger. The zero value produces an
// info-level text logger on the console.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `json:"level"`
	// Format is "text" or "json".
	Format string `json:"format"`
	// File, when set, additionally appends entries to the given path.
	File string `json:"file,omitempty"`
	// Redact lists field keys whose values are replaced with [REDACTED].
	Redact []string `json:"redact,omitempty"`
	// SampleInitial and SampleThereafter enable per-message sampling: the
	// first SampleInitial occurrences of a message always pass, then one in
	// every SampleThereafter. Zero SampleThereafter disables sampling.
	SampleInitial    int `json:"sampleInitial,omitempty"`
	SampleThereafter int `json:"sampleThereafter,omitempty"`
}

// ParseLevel parses a level name. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ApplyConfig builds a logger from cfg.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var formatter Formatter
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		formatter = &TextFormatter{}
	case "json":
		formatter = &JSONFormatter{}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	options := []LoggerOption{WithLevel(level), WithFormatter(formatter)}
	options = append(options, WithOutput(NewConsoleOutput()))
	if cfg.File != "" {
		fo, err := NewFileOutput(cfg.File)
		if err != nil {
			return nil, err
		}
		options = append(options, WithOutput(fo))
	}

	logger := NewLogger(options...)

	// Redaction and sampling live on the bridge handler.
	if len(cfg.Redact) > 0 || cfg.SampleThereafter > 0 {
		bl := logger.(*BaseLogger)
		h := newBridgeHandler(bl)
		if len(cfg.Redact) > 0 {
			h = h.withRedactions(cfg.Redact)
		}
		if cfg.SampleThereafter > 0 {
			h = h.withSampler(cfg.SampleInitial, cfg.SampleThereafter)
		}
		bl.slogLogger = slog.New(h)
	}

	return logger, nil
}
