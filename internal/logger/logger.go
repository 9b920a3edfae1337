package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger for the given environment. Production gets the
// JSON encoder, everything else the development console encoder.
func New(appEnv, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// stdout is reserved for command output
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

// NewNamed builds a logger with the service name attached.
func NewNamed(appEnv, level, name string) (*zap.Logger, error) {
	log, err := New(appEnv, level)
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
