package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rferrors "github.com/vnykmshr/roundflow/pkg/common/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZeroLoggerIsNoop(t *testing.T) {
	var l Logger
	if !l.IsZero() {
		t.Fatal("zero value should report IsZero")
	}
	l.Info("dropped")
	l.LogError("dropped", errors.New("x"))
}

func TestService_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	svc, log := New(Config{Level: "debug", JSON: true, Output: &buf})
	defer svc.Close()

	log.With(String("component", "scheduler")).Info("started", Int("tasks", 3))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if line["message"] != "started" {
		t.Errorf("message = %v", line["message"])
	}
	if line["component"] != "scheduler" {
		t.Errorf("component = %v", line["component"])
	}
	if line["tasks"] != float64(3) {
		t.Errorf("tasks = %v", line["tasks"])
	}
	if caller, _ := line["caller"].(string); !strings.HasPrefix(caller, "logging_test.go:") {
		t.Errorf("caller = %q, want logging_test.go:<line>", caller)
	}
}

func TestService_LogErrorAttachesStack(t *testing.T) {
	var buf bytes.Buffer
	svc, log := New(Config{Level: "info", JSON: true, Output: &buf})
	defer svc.Close()

	log.LogError("task failed", errors.New("plain"))
	log.LogError("task panicked", rferrors.NewPanicError("boom", []byte("goroutine 7 [running]")))

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["level"] != "error" || lines[0]["err"] != "plain" {
		t.Errorf("unexpected first line %v", lines[0])
	}
	if _, ok := lines[0]["stack"]; ok {
		t.Error("plain error should not carry a stack")
	}
	if stack, _ := lines[1]["stack"].(string); !strings.Contains(stack, "goroutine 7") {
		t.Errorf("stack = %q", stack)
	}
}

func TestService_ApplyChangesLevel(t *testing.T) {
	var buf bytes.Buffer
	svc, log := New(Config{Level: "warn", JSON: true, Output: &buf})
	defer svc.Close()

	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	if log.Enabled(LevelInfo) {
		t.Error("info should not be enabled at warn level")
	}

	svc.Apply(Config{Level: "debug", JSON: true, Output: &buf})
	log.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug line missing after Apply: %q", buf.String())
	}
}

func TestService_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundflow.log")
	svc, log := New(Config{Level: "info", File: FileConfig{Enabled: true, Path: path}, Output: &bytes.Buffer{}})

	log.Info("to file")
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("file content = %q", data)
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "error")

	log.Warn("hidden")
	log.Error("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("warn should be filtered at error level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("error line missing")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	if log.IsZero() {
		t.Error("Nop logger should not be zero")
	}
	log.Error("nothing")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
