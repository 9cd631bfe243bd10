package simlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelInfo, true)
	log := slog.New(h)

	log.Info("process admitted", "proc", 7, "mem", 1024)

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", out)
	}
	if !strings.Contains(out, "process admitted") || !strings.Contains(out, "proc=7") {
		t.Fatalf("record missing expected fields: %q", out)
	}
}

func TestEnabledRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelWarn, false)
	log := slog.New(h)

	log.Info("should be filtered")
	log.Warn("should pass")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Fatalf("info record was not filtered: %q", out)
	}
	if !strings.Contains(out, "should pass") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNilFileStillStderrMirrors(t *testing.T) {
	h := NewHandler(nil, slog.LevelInfo, true)
	log := slog.New(h)
	// Exercises the nil-file path without panicking; stderr mirroring is
	// not captured here, only that Handle completes cleanly.
	log.Info("no file sink configured")
}
