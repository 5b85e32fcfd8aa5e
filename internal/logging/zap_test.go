package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestZapLogger_WritesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(BackendZap, "info", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	log.Debug(ctx, "dbg-hidden")
	log.With("user_id", "u1").Info(ctx, "profile updated", "phase", "succeeded")
	log.Error(ctx, "boom")

	out := buf.String()
	if strings.Contains(out, "dbg-hidden") {
		t.Fatalf("debug must be filtered at info level:\n%s", out)
	}
	for _, s := range []string{"INFO", "profile updated", `"user_id": "u1"`, `"phase": "succeeded"`, "ERROR", "boom"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestZapLogger_Sync(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewZapLoggerTo(&buf, "debug")
	if err != nil {
		t.Fatalf("NewZapLoggerTo: %v", err)
	}
	log.Warn(context.Background(), "w")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Fatalf("expected WARN in output, got:\n%s", buf.String())
	}
}
