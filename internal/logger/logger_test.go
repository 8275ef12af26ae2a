package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "hello", limit: 10, want: "hello"},
		{name: "trimmed", in: "  hi  ", limit: 10, want: "hi"},
		{name: "cut", in: "abcdefgh", limit: 3, want: "abc..."},
		{name: "runes", in: "ééééé", limit: 2, want: "éé..."},
		{name: "zero limit", in: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPairFields(t *testing.T) {
	fields := PairFields(" alice.pdf ", "")
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != FieldResume || fields[0].String != "alice.pdf" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if got := DocumentFields("", ""); len(got) != 0 {
		t.Fatalf("expected no fields, got %d", len(got))
	}
}

func TestWithModel(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithModel(zap.New(core), "gemini-2.0-flash").Info("generate")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldModel]; got != "gemini-2.0-flash" {
		t.Fatalf("expected model field, got %v", got)
	}

	// nil logger falls back to a no-op logger
	WithModel(nil, "").Info("ignored")
}
