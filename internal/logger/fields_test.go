package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  source  ", Value: "  adzuna  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "source" || fields[0].String != "adzuna" {
		t.Fatalf("unexpected source field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestSourceFields(t *testing.T) {
	fields := SourceFields("  jooble  ", "run-1")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldSource || fields[0].String != "jooble" {
		t.Fatalf("unexpected source field: %+v", fields[0])
	}

	if fields[1].Key != FieldRunID || fields[1].String != "run-1" {
		t.Fatalf("unexpected run id field: %+v", fields[1])
	}

	empty := SourceFields("", "")
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}
