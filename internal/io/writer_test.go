package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

func TestWriteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "vball_camps.json")

	payload := models.CampsPayload{
		GeneratedAt: "2025-08-01T12:00:00Z",
		SignupURL:   "https://example.com/camps?a=1&b=2",
		Camps: []models.Camp{
			{Title: "Summer <Camp>", Dates: "July 2025", SignupURL: "https://example.com/camps?a=1&b=2"},
		},
	}
	if err := NewPayloadWriter(path).Write(payload); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"generated_at\"") {
		t.Errorf("output should be pretty-printed, got:\n%s", data)
	}
	if !strings.Contains(string(data), "a=1&b=2") || !strings.Contains(string(data), "Summer <Camp>") {
		t.Errorf("output should not HTML-escape text, got:\n%s", data)
	}

	var got models.CampsPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got.Camps) != 1 || got.Camps[0].Title != "Summer <Camp>" {
		t.Errorf("round-tripped camps = %+v", got.Camps)
	}
}

func TestWriteOverwritesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte(`{"stale": true, "padding": "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"}`), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewPayloadWriter(path)
	if err := w.Write(map[string]string{"generated_at": "now"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Errorf("previous content should be replaced, got:\n%s", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file in the directory, found %d entries", len(entries))
	}
}
