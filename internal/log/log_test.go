package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":  LevelDebug,
		" INFO ": LevelInfo,
		"Error":  LevelError,
		"none":   LevelNone,
		"loud":   LevelError,
		"":       LevelError,
	}
	for in, want := range cases {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	for _, want := range []string{"INFO: shown 2", "WARN: careful", "ERROR: broken"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Debugf("x")
	l.Errorf("y")
	l.SetLevel(LevelDebug)
	if l.Level() != LevelNone {
		t.Fatalf("nil logger level = %v, want NONE", l.Level())
	}
}
