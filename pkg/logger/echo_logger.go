package logger

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewEchoRequestLogger logs one line per request. Probes and scrapes on
// /health and /metrics are skipped.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		HandleError:   true,
		LogLatency:    true,
		LogRemoteIP:   true,
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogRequestID:  true,
		LogUserAgent:  true,
		LogStatus:     true,
		LogError:      true,
		LogHeaders:    []string{"Authorization"},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.route", v.RoutePath),
				zap.String("request.request_id", v.RequestID),
				zap.String("request.user_agent", v.UserAgent),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
			}
			if auth := v.Headers["Authorization"]; len(auth) > 0 {
				fields = append(fields, zap.String("request.authorization", maskToken(auth[0])))
			}

			switch {
			case v.Error != nil && v.Status >= 500:
				logger.Error("Request failed", append(fields, zap.Error(v.Error))...)
			case v.Status >= 500:
				logger.Error("Server error", fields...)
			case v.Status >= 400:
				if v.Error != nil {
					fields = append(fields, zap.Error(v.Error))
				}
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	})
}

// maskToken keeps only the edges of a bearer token
func maskToken(val string) string {
	if len(val) > 15 {
		return val[:10] + "..." + val[len(val)-5:]
	}
	return "[MASKED]"
}

// WithEchoLogger routes echo's internal logging through zap
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)
}

// EchoZapLogger implements echo.Logger on top of zap
type EchoZapLogger struct {
	Logger *zap.Logger
	level  log.Lvl
	prefix string
}

func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger, level: log.INFO}
}

func (l *EchoZapLogger) Output() io.Writer {
	return &zapWriter{logger: l.Logger}
}

// SetOutput is a no-op; zap owns the sink
func (l *EchoZapLogger) SetOutput(io.Writer) {}

func (l *EchoZapLogger) Level() log.Lvl {
	return l.level
}

func (l *EchoZapLogger) SetLevel(v log.Lvl) {
	l.level = v
}

// SetHeader is a no-op; zap owns the encoding
func (l *EchoZapLogger) SetHeader(string) {}

func (l *EchoZapLogger) Prefix() string {
	return l.prefix
}

func (l *EchoZapLogger) SetPrefix(p string) {
	l.prefix = p
	l.Logger = l.Logger.Named(p)
}

// enabled applies echo's level on top of zap's own
func (l *EchoZapLogger) enabled(lvl log.Lvl) bool {
	return lvl >= l.level && l.Logger.Core().Enabled(echoToZap(lvl))
}

func echoToZap(lvl log.Lvl) zapcore.Level {
	switch lvl {
	case log.DEBUG:
		return zapcore.DebugLevel
	case log.WARN:
		return zapcore.WarnLevel
	case log.ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *EchoZapLogger) logArgs(lvl log.Lvl, args ...interface{}) {
	if l.enabled(lvl) {
		l.Logger.Sugar().Log(echoToZap(lvl), args...)
	}
}

func (l *EchoZapLogger) logf(lvl log.Lvl, format string, args ...interface{}) {
	if l.enabled(lvl) {
		l.Logger.Sugar().Logf(echoToZap(lvl), format, args...)
	}
}

func (l *EchoZapLogger) logj(lvl log.Lvl, j log.JSON) {
	if ce := l.Logger.Check(echoToZap(lvl), "json_message"); ce != nil && lvl >= l.level {
		ce.Write(zap.Any("json", j))
	}
}

func (l *EchoZapLogger) Print(i ...interface{})                 { l.logArgs(log.INFO, i...) }
func (l *EchoZapLogger) Printf(format string, i ...interface{}) { l.logf(log.INFO, format, i...) }
func (l *EchoZapLogger) Printj(j log.JSON)                      { l.logj(log.INFO, j) }
func (l *EchoZapLogger) Debug(i ...interface{})                 { l.logArgs(log.DEBUG, i...) }
func (l *EchoZapLogger) Debugf(format string, i ...interface{}) { l.logf(log.DEBUG, format, i...) }
func (l *EchoZapLogger) Debugj(j log.JSON)                      { l.logj(log.DEBUG, j) }
func (l *EchoZapLogger) Info(i ...interface{})                  { l.logArgs(log.INFO, i...) }
func (l *EchoZapLogger) Infof(format string, i ...interface{})  { l.logf(log.INFO, format, i...) }
func (l *EchoZapLogger) Infoj(j log.JSON)                       { l.logj(log.INFO, j) }
func (l *EchoZapLogger) Warn(i ...interface{})                  { l.logArgs(log.WARN, i...) }
func (l *EchoZapLogger) Warnf(format string, i ...interface{})  { l.logf(log.WARN, format, i...) }
func (l *EchoZapLogger) Warnj(j log.JSON)                       { l.logj(log.WARN, j) }
func (l *EchoZapLogger) Error(i ...interface{})                 { l.logArgs(log.ERROR, i...) }
func (l *EchoZapLogger) Errorf(format string, i ...interface{}) { l.logf(log.ERROR, format, i...) }
func (l *EchoZapLogger) Errorj(j log.JSON)                      { l.logj(log.ERROR, j) }

func (l *EchoZapLogger) Fatal(i ...interface{})                 { l.Logger.Sugar().Fatal(i...) }
func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) { l.Logger.Sugar().Fatalf(format, i...) }
func (l *EchoZapLogger) Fatalj(j log.JSON)                      { l.Logger.Fatal("json_message", zap.Any("json", j)) }
func (l *EchoZapLogger) Panic(i ...interface{})                 { l.Logger.Sugar().Panic(i...) }
func (l *EchoZapLogger) Panicf(format string, i ...interface{}) { l.Logger.Sugar().Panicf(format, i...) }
func (l *EchoZapLogger) Panicj(j log.JSON)                      { l.Logger.Panic("json_message", zap.Any("json", j)) }

type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
