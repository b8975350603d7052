package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// PayloadWriter writes run output to a JSON file
type PayloadWriter struct {
	Path string
}

// NewPayloadWriter creates a new payload writer
func NewPayloadWriter(path string) *PayloadWriter {
	return &PayloadWriter{
		Path: path,
	}
}

// Write pretty-prints payload and atomically replaces the file at Path,
// creating parent directories as needed.
func (w *PayloadWriter) Write(payload any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.Path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := renameio.WriteFile(abs, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", w.Path, err)
	}
	return nil
}
