// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process zap logger from types.LogConfig.
package logging

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/policy-extract/pkg/types"
)

// FormatConsole selects the human-readable development encoder. Any other
// format yields JSON.
const FormatConsole = "console"

// New builds a logger for cfg. Output goes to stderr so that stdout stays
// reserved for extracted records.
func New(cfg types.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == FormatConsole {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, eris.Wrap(err, "logging: parse log level")
		}
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "logging: build logger")
	}
	return logger, nil
}

// Init builds a logger for cfg and installs it as the zap global.
func Init(cfg types.LogConfig) (*zap.Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
