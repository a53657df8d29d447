package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComponentAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	ctx := WithRequestID(context.Background(), "req-1")
	Ctx(ctx, Component("catalog")).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"catalog"`) {
		t.Fatalf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Fatalf("missing request id field: %s", out)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID() = %q, want empty", got)
	}
	if NewRequestID() == NewRequestID() {
		t.Fatalf("request ids should be unique")
	}
}
