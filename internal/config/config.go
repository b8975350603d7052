package config

import (
	"fmt"
	"os"
	"time"

	"github.com/williampepple1/bondsports-scraper/pkg/models"
	"gopkg.in/yaml.v3"
)

// Engine names a DOM driver
type Engine string

const (
	EngineChromedp   Engine = "chromedp"
	EnginePlaywright Engine = "playwright"
	EngineHTTP       Engine = "http"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Browser  BrowserConfig  `yaml:"browser"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Proxies  ProxyConfig    `yaml:"proxies"`
	Log      LogConfig      `yaml:"log"`
	Training TrainingConfig `yaml:"training"`
	Camps    CampsConfig    `yaml:"camps"`
}

// BrowserConfig holds the browser configuration for JavaScript rendering
type BrowserConfig struct {
	Engine     Engine        `yaml:"engine"`
	Headless   bool          `yaml:"headless"`
	UserAgent  string        `yaml:"user_agent"`
	ExecPath   string        `yaml:"exec_path,omitempty"`
	SettleTime time.Duration `yaml:"settle_time"`
}

// ScraperConfig holds timeouts and selectors used during extraction
type ScraperConfig struct {
	PageTimeout        time.Duration `yaml:"page_timeout"`
	ElementWaitTimeout time.Duration `yaml:"element_wait_timeout"`
	UserAgents         []string      `yaml:"user_agents,omitempty"`
	Selectors          Selectors     `yaml:"selectors"`
}

// Selectors are the CSS selectors the card locator and field extractor use
type Selectors struct {
	SeasonHeading string `yaml:"season_heading"`
	SeasonCard    string `yaml:"season_card"`
	EventSession  string `yaml:"event_session"`
	FieldItem     string `yaml:"field_item"`
	FieldLabel    string `yaml:"field_label"`
	FieldValue    string `yaml:"field_value"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TrainingConfig describes the multi-category run
type TrainingConfig struct {
	OutputFile string            `yaml:"output_file"`
	Categories []models.Category `yaml:"categories"`
}

// CampsConfig describes the single-page camps run
type CampsConfig struct {
	OutputFile string `yaml:"output_file"`
	URL        string `yaml:"url"`
	SignupURL  string `yaml:"signup_url,omitempty"`
}

// Load loads the configuration from a YAML file on top of the defaults
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := CreateDefault()
	// Categories in the file replace the built-in list rather than merging into it
	config.Training.Categories = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(config.Training.Categories) == 0 {
		config.Training.Categories = DefaultCategories()
	}

	// Set default user agents if none provided
	if len(config.Scraper.UserAgents) == 0 {
		config.Scraper.UserAgents = DefaultUserAgents
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// CreateDefault creates the built-in configuration
func CreateDefault() *AppConfig {
	return &AppConfig{
		Browser: BrowserConfig{
			Engine:    EngineChromedp,
			Headless:  true,
			UserAgent: DefaultUserAgents[0],
		},
		Scraper: ScraperConfig{
			PageTimeout:        DefaultPageTimeout,
			ElementWaitTimeout: DefaultElementWaitTimeout,
			UserAgents:         DefaultUserAgents,
			Selectors:          DefaultSelectors(),
		},
		Proxies: ProxyConfig{
			Rotate: true,
			List:   []string{},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Training: TrainingConfig{
			OutputFile: DefaultTrainingOutput,
			Categories: DefaultCategories(),
		},
		Camps: CampsConfig{
			OutputFile: DefaultCampsOutput,
			URL:        DefaultCampsURL,
		},
	}
}

// Validate checks the configuration for values the scraper cannot run with
func (c *AppConfig) Validate() error {
	switch c.Browser.Engine {
	case EngineChromedp, EnginePlaywright, EngineHTTP:
	default:
		return fmt.Errorf("unknown browser engine %q", c.Browser.Engine)
	}
	if c.Scraper.PageTimeout <= 0 {
		return fmt.Errorf("scraper.page_timeout must be positive")
	}
	if c.Scraper.ElementWaitTimeout <= 0 {
		return fmt.Errorf("scraper.element_wait_timeout must be positive")
	}

	seen := make(map[string]bool, len(c.Training.Categories))
	for i, cat := range c.Training.Categories {
		if cat.Key == "" {
			return fmt.Errorf("training.categories[%d]: key is required", i)
		}
		if seen[cat.Key] {
			return fmt.Errorf("training.categories[%d]: duplicate key %q", i, cat.Key)
		}
		seen[cat.Key] = true
		if cat.URL == "" {
			return fmt.Errorf("category %q: url is required", cat.Key)
		}
		if !cat.Mode.Valid() {
			return fmt.Errorf("category %q: unknown mode %q", cat.Key, cat.Mode)
		}
	}

	if c.Camps.URL == "" {
		return fmt.Errorf("camps.url is required")
	}
	return nil
}

// CampsSignupURL returns the signup URL attached to every camp
func (c *AppConfig) CampsSignupURL() string {
	if c.Camps.SignupURL != "" {
		return c.Camps.SignupURL
	}
	return c.Camps.URL
}
