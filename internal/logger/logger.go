// Package logger builds the application's zap logger. The terminal belongs
// to the TUI, so output goes to a file.
package logger

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/quizmaster/internal/config"
	"github.com/abhisek/quizmaster/internal/store"
)

// FileName is the log file created in the data directory.
const FileName = "quizmaster.log"

// New returns a production JSON logger for env=production and a development
// logger otherwise, both writing to Path(cfg).
func New(cfg *config.Config) (*zap.Logger, error) {
	path, err := Path(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(zap.String("env", cfg.Env)), nil
}

// Path returns cfg.Log.Path, or quizmaster.log in the data directory.
func Path(cfg *config.Config) (string, error) {
	if cfg.Log.Path != "" {
		return cfg.Log.Path, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}
