package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Categories maps category keys to results and keeps insertion order
// when marshalled to JSON.
type Categories struct {
	keys    []string
	results map[string]CategoryResult
}

// NewCategories creates an empty ordered mapping
func NewCategories() *Categories {
	return &Categories{results: make(map[string]CategoryResult)}
}

// Set stores a result. Setting an existing key replaces the value in place.
func (c *Categories) Set(key string, result CategoryResult) {
	if c.results == nil {
		c.results = make(map[string]CategoryResult)
	}
	if _, ok := c.results[key]; !ok {
		c.keys = append(c.keys, key)
	}
	if result.Events == nil {
		result.Events = []Event{}
	}
	c.results[key] = result
}

// Get returns the result stored under key
func (c *Categories) Get(key string) (CategoryResult, bool) {
	r, ok := c.results[key]
	return r, ok
}

// Keys returns the keys in insertion order
func (c *Categories) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of categories
func (c *Categories) Len() int {
	return len(c.keys)
}

// MarshalJSON writes the mapping as a JSON object in insertion order
func (c *Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.results[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the document's key order
func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	*c = Categories{results: make(map[string]CategoryResult)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categories: expected key, got %v", tok)
		}
		var result CategoryResult
		if err := dec.Decode(&result); err != nil {
			return fmt.Errorf("categories: decoding %q: %w", key, err)
		}
		c.Set(key, result)
	}
	_, err = dec.Token()
	return err
}
