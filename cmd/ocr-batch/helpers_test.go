package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func prompter(input string) (*linePrompter, *bytes.Buffer) {
	var out bytes.Buffer
	return &linePrompter{in: bufio.NewReader(strings.NewReader(input)), out: &out}, &out
}

func TestLinePrompter(t *testing.T) {
	p, out := prompter("  /data/scans \nlast")

	got, err := p.Prompt("Dir? ")
	if err != nil || got != "/data/scans" {
		t.Errorf("Prompt = %q, %v", got, err)
	}
	// A final line without newline is still an answer.
	if got, err := p.Prompt("Name? "); err != nil || got != "last" {
		t.Errorf("Prompt = %q, %v", got, err)
	}
	if _, err := p.Prompt("More? "); !errors.Is(err, io.EOF) {
		t.Errorf("error = %v, want io.EOF", err)
	}
	if out.String() != "Dir? Name? More? " {
		t.Errorf("questions written = %q", out.String())
	}
}

func TestImageDir(t *testing.T) {
	dir := t.TempDir()

	got, prompted, err := imageDir(dir, dirQuestion, invalidDir, nil)
	if err != nil || got != dir || prompted {
		t.Errorf("flag dir: %q %v %v", got, prompted, err)
	}

	p, _ := prompter(dir + "\n")
	got, prompted, err = imageDir("", dirQuestion, invalidDir, p)
	if err != nil || got != dir || !prompted {
		t.Errorf("prompted dir: %q %v %v", got, prompted, err)
	}

	_, _, err = imageDir(dir+"/missing", dirQuestion, invalidDir, nil)
	msg, ok := userMessage(err)
	if !ok || msg != invalidDir {
		t.Errorf("invalid dir message = %q, %v", msg, ok)
	}
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &userError{msg: "hello"})
	if msg, ok := userMessage(wrapped); !ok || msg != "hello" {
		t.Errorf("userMessage = %q, %v", msg, ok)
	}
	if _, ok := userMessage(errors.New("plain")); ok {
		t.Error("plain errors carry no user message")
	}
}
