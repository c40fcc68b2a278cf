package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogError logs err with its code attached. Server-side codes and broken
// records log at error level, everything else the caller can fix at warn.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	code := CodeOf(err)
	level := zapcore.WarnLevel
	if code == ErrInvalidSubscriptionState || ToHTTPStatus(code) >= 500 {
		level = zapcore.ErrorLevel
	}

	if ce := logger.Check(level, msg); ce != nil {
		ce.Write(append([]zap.Field{zap.Error(err), zap.String("error_code", code)}, fields...)...)
	}
}
