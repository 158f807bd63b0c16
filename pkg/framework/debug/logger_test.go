package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("KeyValueRecord", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "test")

		logger.Info("initialized", "sample_rate", 48000)

		output := buf.String()
		for _, want := range []string{"level=INFO", "component=test", "msg=initialized", "sample_rate=48000"} {
			if !strings.Contains(output, want) {
				t.Errorf("missing %q in %q", want, output)
			}
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "")
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "")
		logger.SetLevel(LogLevelOff)

		logger.Error("should not appear")

		if buf.Len() > 0 {
			t.Error("Disabled logger should not write")
		}
		if logger.Enabled(LogLevelError) {
			t.Error("Enabled should be false when off")
		}
	})

	t.Run("With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "").With("block", 7)

		logger.Warn("filter reset")

		if !strings.Contains(buf.String(), "block=7") {
			t.Errorf("missing attribute in %q", buf.String())
		}
	})

	t.Run("ConditionalLogging", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput(&buf)
		SetLevel(LogLevelDebug)
		defer SetLevel(LogLevelInfo)

		WarnIf(false, "hidden")
		WarnIf(true, "shown")

		output := buf.String()
		if strings.Contains(output, "hidden") {
			t.Error("false condition should not log")
		}
		if !strings.Contains(output, "shown") {
			t.Error("true condition should log")
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want LogLevel
		ok   bool
	}{
		{"debug", LogLevelDebug, true},
		{"WARN", LogLevelWarn, true},
		{"off", LogLevelOff, true},
		{"loud", LogLevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
