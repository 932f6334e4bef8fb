package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestTagFormatter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, DEBUG)

	log.Warn("no icon found")
	log.WithField("path", "/tmp/x").WithError(errors.New("boom")).Error("copy failed")
	log.Debug("details")

	want := "[WARN] no icon found\n" +
		"[ERROR] copy failed error=boom path=/tmp/x\n" +
		"[DEBUG] details\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WARNING)
	log.Info("hidden")
	log.Warn("shown")
	if got := buf.String(); got != "[WARN] shown\n" {
		t.Errorf("output = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return the given logger")
	}
}
