// Package logger builds the zap loggers used by every binary.
package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger tagged with the binary's name.
// Debug mode keeps JSON output but lowers the level to debug.
func New(app string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"app": app}
	return cfg.Build()
}

// Global builds the logger, installs it as zap's global and returns it
// with a function that flushes it.
func Global(app string, debug bool) (*zap.Logger, func()) {
	l, err := New(app, debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	undo := zap.ReplaceGlobals(l)
	return l, func() {
		_ = l.Sync()
		undo()
	}
}
