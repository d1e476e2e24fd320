package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", log.GetLevel())
	}

	log.WithField("file", "a.png").Info("processed")
	out := buf.String()
	if !strings.Contains(out, "processed") || !strings.Contains(out, "file=a.png") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", "json", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.WithField("file", "b.png").Debug("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["file"] != "b.png" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("loud", "text", nil); err == nil {
		t.Error("New should reject an unknown level")
	}
	if _, err := New("info", "xml", nil); err == nil {
		t.Error("New should reject an unknown format")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	// Must not panic or write anywhere visible.
	log.Error("dropped")
}
