package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)
	log.Info().Msg("hidden")
	log.Warn().Str("game", "FRAGER").Msg("shown")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single json line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "shown" || entry["game"] != "FRAGER" || entry["service"] != "tippy-tappy" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", false)
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info, got %q", buf.String())
	}
}
