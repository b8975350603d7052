package config

import (
	"time"

	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

const (
	DefaultPageTimeout        = 30 * time.Second
	DefaultElementWaitTimeout = 20 * time.Second

	DefaultTrainingOutput = "data/vball_training.json"
	DefaultCampsOutput    = "data/vball_camps.json"

	DefaultCampsURL = "https://bondsports.co/activity/programs/CO_ED-youth-VOLLEYBALL/13552"
)

// DefaultUserAgents provides a list of common user agents
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// DefaultSelectors returns the BondSports markup selectors
func DefaultSelectors() Selectors {
	return Selectors{
		SeasonHeading: `h3[data-testid="SeasonDetails-EF514D"]`,
		SeasonCard:    `div.css-1y8xm4p-SeasonDetails-boxItemCss`,
		EventSession:  `ul[data-testid="events-session"]`,
		FieldItem:     "li",
		FieldLabel:    "span",
		FieldValue:    "p",
	}
}

// DefaultCategories returns the training pages scraped when no config file is given
func DefaultCategories() []models.Category {
	return []models.Category{
		{
			Key:   "beginner",
			Label: "Training: Intermediate 12/under",
			URL:   "https://bondsports.co/activity/programs/CO_ED-adult-VOLLEYBALL/13547/season/training%3A-intermediate-12%2Funder/105882",
			Mode:  models.ModeEventSessions,
		},
		{
			Key:   "intermediate",
			Label: "Training: Advanced 14U+",
			URL:   "https://bondsports.co/activity/programs/CO_ED-adult-VOLLEYBALL/13547/season/training%3A-advanced-14u%2B/105883",
			Mode:  models.ModeEventSessions,
		},
	}
}
