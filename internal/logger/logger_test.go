package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Info("asset packed", "asset_id", "a1", "size", 42)

	line := buf.String()
	if !strings.Contains(line, "[INFO] asset packed") {
		t.Errorf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "asset_id=a1") || !strings.Contains(line, "size=42") {
		t.Errorf("missing attributes in: %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("not shown")
	Info("not shown either")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("below-level records leaked: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "ERROR", "text", false)

	Info("before")
	SetLevel("DEBUG")
	Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("info logged at ERROR level: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("debug missing after SetLevel: %q", out)
	}

	// Invalid levels are ignored.
	SetLevel("NOISY")
	buf.Reset()
	Debug("still debug")
	if !strings.Contains(buf.String(), "still debug") {
		t.Error("invalid SetLevel changed the level")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("archive sealed", "archives", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "archive sealed" {
		t.Errorf("unexpected msg: %v", record["msg"])
	}
	if record["archives"] != float64(3) {
		t.Errorf("unexpected archives field: %v", record["archives"])
	}
}
