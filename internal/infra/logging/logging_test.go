//go:build !integration

// File: internal/infra/logging/logging_test.go
package logging

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Chakis0/multibot-service/internal/config"
)

func TestNewLevelParsing(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"bogus", zerolog.InfoLevel}, // unknown levels fall back to info
		{"", zerolog.InfoLevel},
	}
	for _, c := range cases {
		New(config.LogConfig{Level: c.level, Format: "json"}, false)
		if got := zerolog.GlobalLevel(); got != c.want {
			t.Errorf("level %q: global level = %s, want %s", c.level, got, c.want)
		}
	}
}

func TestNewSampling(t *testing.T) {
	// Sampling is a prod-only concern; dev mode must keep every line.
	l := New(config.LogConfig{Level: "info", Format: "json", Sampling: true}, true)
	if l == nil {
		t.Fatal("nil logger")
	}
	l = New(config.LogConfig{Level: "info", Format: "json", Sampling: true}, false)
	if l == nil {
		t.Fatal("nil logger")
	}
}
