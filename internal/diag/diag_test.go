package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestReporter_Counts(t *testing.T) {
	r := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	r.Infof("informational")
	r.Warnf("first warning", "key", "value")
	r.Warnf("second warning")
	r.Errorf("an error")

	if got := r.Warnings(); got != 2 {
		t.Errorf("Warnings() = %d, want 2", got)
	}
	if got := r.Errors(); got != 1 {
		t.Errorf("Errors() = %d, want 1", got)
	}
}

func TestReporter_Failed(t *testing.T) {
	tests := []struct {
		name          string
		warnings      int
		errors        int
		fatalWarnings bool
		want          bool
	}{
		{"clean", 0, 0, false, false},
		{"clean fatal-warnings", 0, 0, true, false},
		{"warnings tolerated", 3, 0, false, false},
		{"warnings fatal", 1, 0, true, true},
		{"errors always fatal", 0, 1, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			for i := 0; i < tc.warnings; i++ {
				r.Warnf("warning")
			}
			for i := 0; i < tc.errors; i++ {
				r.Errorf("error")
			}
			if got := r.Failed(tc.fatalWarnings); got != tc.want {
				t.Errorf("Failed(%v) = %v, want %v", tc.fatalWarnings, got, tc.want)
			}
		})
	}
}

func TestReporter_LogOutput(t *testing.T) {
	var buf bytes.Buffer
	r := New(slog.New(slog.NewTextHandler(&buf, nil)))

	r.Warnf("could not resolve ancestor", "class", "Button")

	out := buf.String()
	if !strings.Contains(out, "could not resolve ancestor") || !strings.Contains(out, "class=Button") {
		t.Errorf("unexpected log output: %s", out)
	}
}
