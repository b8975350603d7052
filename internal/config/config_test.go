package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateDefault(t *testing.T) {
	cfg := CreateDefault()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Scraper.PageTimeout != 30*time.Second {
		t.Errorf("PageTimeout = %v, want 30s", cfg.Scraper.PageTimeout)
	}
	if cfg.Scraper.ElementWaitTimeout != 20*time.Second {
		t.Errorf("ElementWaitTimeout = %v, want 20s", cfg.Scraper.ElementWaitTimeout)
	}
	if len(cfg.Training.Categories) != 2 {
		t.Errorf("default categories = %d, want 2", len(cfg.Training.Categories))
	}
	if cfg.CampsSignupURL() != DefaultCampsURL {
		t.Errorf("CampsSignupURL() = %q, want camps page URL", cfg.CampsSignupURL())
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
browser:
  engine: playwright
  headless: false
scraper:
  page_timeout: 45s
training:
  output_file: out/training.json
  categories:
    - key: advanced
      label: Advanced
      url: https://example.com/season
      mode: season_cards
      filter: advanced
      signup_url: https://example.com/register
camps:
  signup_url: https://example.com/camps-signup
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Browser.Engine != EnginePlaywright || cfg.Browser.Headless {
		t.Errorf("Browser = %+v", cfg.Browser)
	}
	if cfg.Scraper.PageTimeout != 45*time.Second {
		t.Errorf("PageTimeout = %v, want 45s", cfg.Scraper.PageTimeout)
	}
	if cfg.Scraper.ElementWaitTimeout != DefaultElementWaitTimeout {
		t.Errorf("ElementWaitTimeout = %v, want default", cfg.Scraper.ElementWaitTimeout)
	}
	if cfg.Scraper.Selectors.SeasonHeading != DefaultSelectors().SeasonHeading {
		t.Errorf("selectors should keep defaults, got %+v", cfg.Scraper.Selectors)
	}
	if len(cfg.Training.Categories) != 1 {
		t.Fatalf("categories = %+v, want the file's single category", cfg.Training.Categories)
	}
	want := models.Category{
		Key:       "advanced",
		Label:     "Advanced",
		URL:       "https://example.com/season",
		Mode:      models.ModeSeasonCards,
		Filter:    "advanced",
		SignupURL: "https://example.com/register",
	}
	if cfg.Training.Categories[0] != want {
		t.Errorf("category = %+v, want %+v", cfg.Training.Categories[0], want)
	}
	if cfg.Camps.URL != DefaultCampsURL {
		t.Errorf("Camps.URL = %q, want default", cfg.Camps.URL)
	}
	if cfg.CampsSignupURL() != "https://example.com/camps-signup" {
		t.Errorf("CampsSignupURL() = %q", cfg.CampsSignupURL())
	}
}

func TestLoadWithoutCategoriesKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "log:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Training.Categories) != len(DefaultCategories()) {
		t.Errorf("categories = %d, want defaults", len(cfg.Training.Categories))
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "scraper: [",
			wantErr: "parsing config",
		},
		{
			name: "duplicate keys",
			content: `
training:
  categories:
    - {key: a, url: https://x/1, mode: event_sessions}
    - {key: a, url: https://x/2, mode: event_sessions}
`,
			wantErr: "duplicate key",
		},
		{
			name: "unknown mode",
			content: `
training:
  categories:
    - {key: a, url: https://x/1, mode: calendar}
`,
			wantErr: "unknown mode",
		},
		{
			name: "missing url",
			content: `
training:
  categories:
    - {key: a, mode: season_cards}
`,
			wantErr: "url is required",
		},
		{
			name:    "unknown engine",
			content: "browser:\n  engine: lynx\n",
			wantErr: "unknown browser engine",
		},
		{
			name:    "zero timeout",
			content: "scraper:\n  element_wait_timeout: 0s\n",
			wantErr: "element_wait_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "scraper.example.yaml"))
	if err != nil {
		t.Fatalf("Load(example) error: %v", err)
	}
	if cfg.Browser.SettleTime != 2*time.Second {
		t.Errorf("SettleTime = %v, want 2s", cfg.Browser.SettleTime)
	}
	if len(cfg.Training.Categories) != 2 || cfg.Training.Categories[1].Filter != "advanced" {
		t.Errorf("categories = %+v", cfg.Training.Categories)
	}
}
