// Package logging builds the zap loggers shared by the ingest pipeline
// and the CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared logger. Development mode prints human-readable
// lines at debug level; otherwise the production JSON config is used.
func New(development bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
