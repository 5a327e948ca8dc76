package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{" Panic ", logrus.PanicLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLogger(tt.in, "text").GetLevel())
		})
	}
}

func TestNewLogger_UnknownLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "loud", "text")

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewLogger_AcceptsEveryConfigLevel(t *testing.T) {
	// every value the config validator accepts must map to its own level
	for _, name := range []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"} {
		var buf bytes.Buffer
		l := newLogger(&buf, name, "text")
		want, err := logrus.ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, l.GetLevel(), name)
		assert.Empty(t, buf.String(), name)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info", "json")

	l.WithField("component", "exporter").Info("export complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "export complete", entry["msg"])
	assert.Equal(t, "exporter", entry["component"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info", "text")

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NotNil(t, l)
}
