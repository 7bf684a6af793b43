package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/config"
)

// New builds the command-line logger. Production writes JSON; anything else
// gets the development console encoder. Output goes to cfg.Log.File when
// set, otherwise stderr.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc.Level = level

	if cfg.Log.File != "" {
		zc.OutputPaths = []string{cfg.Log.File}
		zc.ErrorOutputPaths = []string{cfg.Log.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}
	return zc.Build()
}

// ForTerminalUI returns a logger that does not write to the terminal the
// drill draws on: a file logger when cfg.Log.File is set, otherwise a no-op.
func ForTerminalUI(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.File == "" {
		return zap.NewNop(), nil
	}
	return New(cfg)
}
