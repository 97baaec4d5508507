// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(handler(&buf, Options{Level: "info"})).Info("hello", "page", "/menu")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("production output should be JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "hello" || rec["page"] != "/menu" {
		t.Errorf("record: %v", rec)
	}

	buf.Reset()
	slog.New(handler(&buf, Options{Dev: true})).Info("hello", "page", "/menu")
	if !strings.Contains(buf.String(), "msg=hello") || !strings.Contains(buf.String(), "page=/menu") {
		t.Errorf("dev output should be text: %q", buf.String())
	}
}

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h := handler(&buf, Options{Level: "warn"})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "site.log")
	logger, closer := New(Options{File: path})
	logger.Info("written to file", "key", "value")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("file contents: %q", data)
	}
}

func TestNewWithoutFile(t *testing.T) {
	_, closer := New(Options{})
	if closer == nil {
		t.Fatal("closer should never be nil")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
