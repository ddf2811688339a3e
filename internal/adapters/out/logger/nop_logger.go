package logger

import "github.com/suchimauz/hospital-desk/internal/core/ports/out"

type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (l *NopLogger) Debug(string, out.LogFields)             {}
func (l *NopLogger) Info(string, out.LogFields)              {}
func (l *NopLogger) Warn(string, out.LogFields)              {}
func (l *NopLogger) Error(string, out.LogFields)             {}
func (l *NopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l *NopLogger) WithModule(string) out.LoggerPort        { return l }
func (l *NopLogger) Sync() error                             { return nil }
