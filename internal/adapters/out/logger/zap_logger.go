package logger

import (
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger пишет JSON-лог для dev/stage/production
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &ZapLogger{logger: logger}, nil
}

func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZapLogger{logger: l.logger.With(toZapFields(fields)...)}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{logger: l.logger.Named(module)}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.logger.Debug(event, toZapFields(fields)...)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.logger.Info(event, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.logger.Warn(event, toZapFields(fields)...)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.logger.Error(event, toZapFields(fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func toZapFields(fields out.LogFields) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}
