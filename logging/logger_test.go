package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"loud", LogLevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if tt.wantErr {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelInfo, Format: "json", Output: &buf})

	l.Debug("hidden")
	With(l, "component", "planner").Info("agent.log", "message", "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "agent.log", rec["msg"])
	assert.Equal(t, "planner", rec["component"])
	assert.Equal(t, "hello", rec["message"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelWarn, Format: "text", Output: &buf})

	l.Info("hidden")
	l.Warn("visible", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LogLevelDebug, Format: "console", Output: &buf})

	require.IsType(t, &ZerologAdapter{}, l)
	With(l, "component", "tester").Debug("tool.call.start", "tool", "check_password_strength", "dangling")

	out := buf.String()
	assert.Contains(t, out, "tool.call.start")
	assert.Contains(t, out, "check_password_strength")
	assert.Contains(t, out, "tester")
}

func TestWith_NoOp(t *testing.T) {
	l := With(NoOpLogger{}, "a", 1)
	assert.Equal(t, NoOpLogger{}, l)
}
