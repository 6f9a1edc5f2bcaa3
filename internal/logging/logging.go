// Package logging builds the zap loggers used by the objcgen command.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. Console output is the default;
// json selects structured output for machine consumption. Verbose lowers
// the level from info to debug.
func New(verbose, json bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	if json {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		return config.Build()
	}
	return zap.New(zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level)), nil
}

// consoleEncoder writes "LEVEL message key=value" lines without timestamps.
func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}
