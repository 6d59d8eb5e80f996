package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComponentTagsFeature(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf).Component("belial")

	l.Info("клик по %d,%d", 10, 20)

	out := buf.String()
	if !strings.Contains(out, `"feature":"belial"`) {
		t.Fatalf("feature field missing: %s", out)
	}
	if !strings.Contains(out, "клик по 10,20") {
		t.Fatalf("message missing: %s", out)
	}
}

func TestLogErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)

	l.LogError(nil, "ничего")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %s", buf.String())
	}

	l.LogError(errors.New("boom"), "захват")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Fatalf("error field missing: %s", buf.String())
	}
}

func TestNewLoggerManagerCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	l, err := NewLoggerManager(path)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("старт")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "старт") {
		t.Fatalf("log file does not contain message: %s", data)
	}
}
