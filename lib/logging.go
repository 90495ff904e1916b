// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLogLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var result zapcore.Level
	if err := result.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return result, fmt.Errorf("invalid log level %q", level)
	}
	return result, nil
}

// NewLogger builds the process logger. verbose gives the human-readable
// development logger at debug level on stderr; otherwise JSON goes to the
// configured file (or stderr) at the configured level.
func NewLogger(config LoggingConfig, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	level, err := parseLogLevel(config.Level)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	if config.File != "" {
		zapConfig.OutputPaths = []string{config.File}
		zapConfig.ErrorOutputPaths = []string{config.File}
	} else {
		zapConfig.OutputPaths = []string{"stderr"}
	}
	return zapConfig.Build()
}
