package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr captures stderr output during test execution
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debugEnv  string
		namespace string
		enabled   bool
	}{
		{
			name:      "empty DEBUG disables all loggers",
			debugEnv:  "",
			namespace: "workflow:inspector",
			enabled:   false,
		},
		{
			name:      "wildcard enables all loggers",
			debugEnv:  "*",
			namespace: "workflow:inspector",
			enabled:   true,
		},
		{
			name:      "exact match enables logger",
			debugEnv:  "workflow:inspector",
			namespace: "workflow:inspector",
			enabled:   true,
		},
		{
			name:      "exact match different namespace disabled",
			debugEnv:  "workflow:inspector",
			namespace: "cli:diagnose",
			enabled:   false,
		},
		{
			name:      "namespace wildcard enables matching loggers",
			debugEnv:  "workflow:*",
			namespace: "workflow:inspector",
			enabled:   true,
		},
		{
			name:      "namespace wildcard does not match different prefix",
			debugEnv:  "workflow:*",
			namespace: "cli:diagnose",
			enabled:   false,
		},
		{
			name:      "multiple patterns with comma",
			debugEnv:  "workflow:*,cli:*",
			namespace: "cli:diagnose",
			enabled:   true,
		},
		{
			name:      "exclusion pattern disables specific logger",
			debugEnv:  "workflow:*,-workflow:inspector",
			namespace: "workflow:inspector",
			enabled:   false,
		},
		{
			name:      "exclusion does not affect other loggers",
			debugEnv:  "workflow:*,-workflow:inspector",
			namespace: "workflow:lint",
			enabled:   true,
		},
		{
			name:      "exclusion with wildcard",
			debugEnv:  "*,-workflow:*",
			namespace: "workflow:inspector",
			enabled:   false,
		},
		{
			name:      "suffix wildcard",
			debugEnv:  "*:inspector",
			namespace: "workflow:inspector",
			enabled:   true,
		},
		{
			name:      "middle wildcard",
			debugEnv:  "workflow:*:parse",
			namespace: "workflow:triggers:parse",
			enabled:   true,
		},
		{
			name:      "spaces in patterns are trimmed",
			debugEnv:  "workflow:* , cli:*",
			namespace: "cli:diagnose",
			enabled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugEnv = tt.debugEnv

			l := New(tt.namespace)
			if l.Enabled() != tt.enabled {
				t.Errorf("New(%q) with DEBUG=%q: enabled = %v, want %v",
					tt.namespace, tt.debugEnv, l.Enabled(), tt.enabled)
			}
		})
	}
}

func TestLogger_Printf(t *testing.T) {
	tests := []struct {
		name     string
		debugEnv string
		wantLog  bool
	}{
		{name: "enabled logger prints", debugEnv: "*", wantLog: true},
		{name: "disabled logger does not print", debugEnv: "", wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugEnv = tt.debugEnv

			l := New("workflow:inspector")
			output := captureStderr(func() {
				l.Printf("parsed %d files", 3)
			})

			if tt.wantLog {
				if !strings.Contains(output, "parsed 3 files") {
					t.Errorf("expected output to contain message, got %q", output)
				}
				if !strings.Contains(output, "workflow:inspector") {
					t.Errorf("expected output to contain namespace, got %q", output)
				}
			} else if output != "" {
				t.Errorf("expected no output, got %q", output)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must swallow output.
	l := Discard()
	l.Info("dropped", "key", "value")
}
