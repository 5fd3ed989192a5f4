package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapterWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel, false)

	log.Info(context.Background(), "remote read failed, serving cached data",
		"scope", "cart::u-42", "records", 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["message"] != "remote read failed, serving cached data" {
		t.Errorf("unexpected message: %v", line["message"])
	}
	if line["scope"] != "cart::u-42" {
		t.Errorf("unexpected scope field: %v", line["scope"])
	}
	if line["records"] != float64(3) {
		t.Errorf("unexpected records field: %v", line["records"])
	}
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel, false)

	log.Debug(context.Background(), "suppressed")
	log.Info(context.Background(), "suppressed")
	if buf.Len() != 0 {
		t.Errorf("below-level output written: %s", buf.String())
	}

	log.Warn(context.Background(), "present")
	if buf.Len() == 0 {
		t.Error("warn output missing")
	}
}

func TestZerologAdapterWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel, false).With("component", "cart")

	log.Info(context.Background(), "hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["component"] != "cart" {
		t.Errorf("bound field missing: %v", line)
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	log := Nop()
	log.Debug(context.Background(), "discarded", "k", "v")
	log.With("k", "v").Error(context.Background(), "discarded")
}
