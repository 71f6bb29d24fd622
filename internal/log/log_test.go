package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Debugf("[TEST] hidden %d", 1)
	l.Infof("[TEST] shown %d", 2)
	l.Errorf("[TEST] failed: %v", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug line should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "INFO [TEST] shown 2") {
		t.Errorf("Missing info line: %q", out)
	}
	if !strings.Contains(out, "ERROR [TEST] failed: boom") {
		t.Errorf("Missing error line: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.SetLevel(LevelDebug)

	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG visible") {
		t.Errorf("Expected debug line, got %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(LevelError)
	l.Warnf("quiet")
	if buf.Len() != 0 {
		t.Errorf("Expected warn to be filtered, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Infof("nothing happens")
}
