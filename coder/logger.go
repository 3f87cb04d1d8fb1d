package coder

import (
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/dictcoder/errors"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the coder package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the coder package's logger.
// This must be called before any encode or decode operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

// failureFields describes an engine error for debug logs.
func failureFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var e *errors.Error
	if stderrors.As(err, &e) {
		fields = append(fields,
			zap.String("phase", string(e.Phase)),
			zap.Strings("path", e.Path))
	}
	return fields
}
