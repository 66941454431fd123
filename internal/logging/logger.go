// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger when prod is true and a colored
// console logger otherwise.  The returned func flushes buffered entries.
func New(prod bool) (*zap.Logger, func() error) {
	var logger *zap.Logger
	if prod {
		logger = zap.Must(zap.NewProduction())
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger = zap.Must(cfg.Build())
	}
	return logger, logger.Sync
}
