package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsoleLoggerWritesModuleAndFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLoggerWithWriter("UTC", &buf)

	log := base.WithModule("SlotService").WithFields(out.LogFields{"doctorId": "d-1"})
	log.Warn("slots.working_hours.malformed", out.LogFields{"field": "breakTime"})

	output := buf.String()
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "[SlotService]")
	assert.Contains(t, output, `"event": "slots.working_hours.malformed"`)
	assert.Contains(t, output, `"doctorId": "d-1"`)
	assert.Contains(t, output, `"field": "breakTime"`)
}

func TestConsoleLoggerWithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLoggerWithWriter("Invalid/Zone", &buf)

	_ = base.WithFields(out.LogFields{"secret": "x"})
	base.Info("app.starting", nil)

	assert.NotContains(t, buf.String(), "secret")
	assert.Contains(t, buf.String(), "[unknown]")
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapLoggerFrom(zap.New(core)).WithModule("Backend").WithFields(out.LogFields{"requestId": "r-1"})

	log.Error("backend.request.failed", out.LogFields{"status": 502})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "backend.request.failed", entry.Message)
	assert.Equal(t, "Backend", entry.LoggerName)
	assert.Equal(t, "r-1", entry.ContextMap()["requestId"])
	assert.EqualValues(t, 502, entry.ContextMap()["status"])
}

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewZapLogger("loud")
	assert.Error(t, err)
}
