package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-123")
	if got := TraceID(ctx); got != "trace-123" {
		t.Errorf("TraceID() = %q; want trace-123", got)
	}
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("TraceID() on empty context = %q; want empty", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONRecordCarriesComponentTraceAndSource(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", true)

	ctx := WithTraceID(context.Background(), "abc")
	NewLogger("documents").WithContext(ctx).Error("write failed", "file", "q3.pdf")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if record["component"] != "documents" {
		t.Errorf("component = %v; want documents", record["component"])
	}
	if record["traceId"] != "abc" {
		t.Errorf("traceId = %v; want abc", record["traceId"])
	}
	source, ok := record["source"].(map[string]any)
	if !ok {
		t.Fatalf("missing source in %v", record)
	}
	if file, _ := source["file"].(string); !strings.HasSuffix(file, "logger_test.go") {
		t.Errorf("source file = %q; want the caller's file", file)
	}
}

func TestLevelFiltering(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", false)
	log := NewLogger("quiet")
	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn, got %q", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

var packageLogger = NewLogger("early")

func TestLoggerBuiltBeforeInitFollowsIt(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", true)
	packageLogger.With("file", "q3.pdf").Debug("reading")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if record["level"] != "DEBUG" || record["msg"] != "reading" {
		t.Errorf("unexpected record: %v", record)
	}
	if record["component"] != "early" || record["file"] != "q3.pdf" {
		t.Errorf("attributes missing from record: %v", record)
	}
}
