package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[37m"
)

// ConsoleLogger - цветной человекочитаемый лог для локального запуска
type ConsoleLogger struct {
	defaultFields out.LogFields
	module        string
	location      *time.Location
	writer        io.Writer
	mu            *sync.Mutex
}

func NewConsoleLogger(timezone string) (*ConsoleLogger, error) {
	return NewConsoleLoggerWithWriter(timezone, os.Stdout), nil
}

func NewConsoleLoggerWithWriter(timezone string, writer io.Writer) *ConsoleLogger {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return &ConsoleLogger{
		defaultFields: make(out.LogFields),
		module:        "unknown",
		location:      loc,
		writer:        writer,
		mu:            &sync.Mutex{},
	}
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ConsoleLogger{
		defaultFields: make(out.LogFields, len(l.defaultFields)+len(fields)),
		module:        l.module,
		location:      l.location,
		writer:        l.writer,
		mu:            l.mu,
	}

	// Копируем существующие поля
	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}

	// Добавляем новые поля
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	return &ConsoleLogger{
		defaultFields: l.defaultFields,
		module:        module,
		location:      l.location,
		writer:        l.writer,
		mu:            l.mu,
	}
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) Sync() error {
	return nil
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	// Объединяем поля
	mergedFields := make(out.LogFields, len(l.defaultFields)+len(fields)+1)
	for k, v := range l.defaultFields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}
	mergedFields["event"] = event

	timestamp := time.Now().In(l.location).Format("2006-01-02 15:04:05.000")

	var levelColor string
	switch level {
	case out.LogLevelDebug:
		levelColor = colorGray
	case out.LogLevelInfo:
		levelColor = colorGreen
	case out.LogLevelWarn:
		levelColor = colorYellow
	case out.LogLevelError:
		levelColor = colorRed
	}

	fieldsBytes, _ := json.MarshalIndent(mergedFields, "", "  ")

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "%s[%s]%s %s[%s]%s %s[%s]%s\n%s\n\n",
		colorGray, timestamp, colorReset,
		levelColor, level, colorReset,
		colorCyan, l.module, colorReset,
		string(fieldsBytes),
	)
}
