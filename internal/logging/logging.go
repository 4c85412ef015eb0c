package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// thin wrapper around zap's sugared logger
type Logger struct {
	*zap.SugaredLogger
}

// creates a logger; verbose enables debug level and caller info
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
	}

	base, err := cfg.Build()
	if err != nil {
		// fall back to a no-op logger rather than failing startup
		return &Logger{zap.NewNop().Sugar()}
	}

	return &Logger{base.Sugar()}
}

// returns a logger with a component attribute attached to every entry
func (l *Logger) Named(component string) *Logger {
	return &Logger{l.With("component", component)}
}

func (l *Logger) Close() {
	_ = l.Sync()
}
