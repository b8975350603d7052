// Package scraper runs the extraction engine over configured categories and
// assembles the output payloads.
//
// A run is sequential: one page is opened, navigated to each category in
// order, and closed at the end. Failures are contained per category and show
// up as empty event lists.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/williampepple1/bondsports-scraper/internal/config"
	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/internal/extraction"
	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

// TimestampLayout formats generated_at: ISO-8601 UTC with microseconds
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Scraper aggregates categories into payloads
type Scraper struct {
	Browser     dom.Browser
	Extractor   *extraction.Extractor
	PageTimeout time.Duration
	Log         extraction.Logger
	// Now is the run clock; defaults to time.Now.
	Now func() time.Time
}

// New creates a scraper over an acquired browser
func New(browser dom.Browser, cfg *config.AppConfig, log extraction.Logger) *Scraper {
	return &Scraper{
		Browser:     browser,
		Extractor:   extraction.NewExtractor(cfg.Scraper.Selectors, cfg.Scraper.ElementWaitTimeout, log),
		PageTimeout: cfg.Scraper.PageTimeout,
		Log:         log,
		Now:         time.Now,
	}
}

func (s *Scraper) generatedAt() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(TimestampLayout)
}

// withPage opens the run's page, hands it to fn and closes it afterwards
// whatever fn did.
func (s *Scraper) withPage(ctx context.Context, fn func(dom.Page)) error {
	page, err := s.Browser.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			s.Log.Warn("closing page failed", "error", err)
		}
	}()

	fn(page)
	return nil
}

// RunTraining scrapes every category in order. Every category key appears in
// the result, with an empty event list when its page could not be read.
func (s *Scraper) RunTraining(ctx context.Context, categories []models.Category) (*models.TrainingPayload, error) {
	payload := &models.TrainingPayload{
		GeneratedAt: s.generatedAt(),
		Categories:  models.NewCategories(),
	}

	err := s.withPage(ctx, func(page dom.Page) {
		for _, cat := range categories {
			fields := s.scrapeCategory(ctx, page, cat)

			events := make([]models.Event, 0, len(fields))
			for _, f := range fields {
				events = append(events, models.Event{
					Title:     f.Title,
					Date:      f.Date,
					Time:      f.Time,
					SignupURL: cat.EffectiveSignupURL(),
				})
			}

			payload.Categories.Set(cat.Key, models.CategoryResult{
				Label:  categoryLabel(cat),
				URL:    cat.URL,
				Events: events,
			})
			s.Log.Info("category done", "category", cat.Key, "events", len(events))
		}
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// RunCamps scrapes the season cards of the camps page
func (s *Scraper) RunCamps(ctx context.Context, url, signupURL string) (*models.CampsPayload, error) {
	if signupURL == "" {
		signupURL = url
	}
	payload := &models.CampsPayload{
		GeneratedAt: s.generatedAt(),
		SignupURL:   signupURL,
		Camps:       []models.Camp{},
	}

	cat := models.Category{Key: "camps", Label: "Camps", URL: url, Mode: models.ModeSeasonCards}
	err := s.withPage(ctx, func(page dom.Page) {
		for _, f := range s.scrapeCategory(ctx, page, cat) {
			payload.Camps = append(payload.Camps, models.Camp{
				Title:              f.Title,
				Dates:              f.Date,
				RegistrationStarts: f.RegistrationStarts,
				SignupURL:          signupURL,
			})
		}
		s.Log.Info("camps done", "camps", len(payload.Camps))
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// scrapeCategory makes one navigation and one extraction attempt. Any
// failure is logged and yields no fields.
func (s *Scraper) scrapeCategory(ctx context.Context, page dom.Page, cat models.Category) (fields []extraction.Fields) {
	log := s.Log
	defer func() {
		if r := recover(); r != nil {
			log.Error("extraction panicked", "category", cat.Key, "panic", r)
			fields = nil
		}
	}()

	log.Info("scraping category", "category", cat.Key, "url", cat.URL)

	if err := page.Navigate(ctx, cat.URL, s.PageTimeout); err != nil {
		switch {
		case dom.IsTimeout(err):
			log.Warn("page load timed out", "category", cat.Key, "timeout", s.PageTimeout)
		case errors.Is(err, context.Canceled):
			log.Warn("run cancelled", "category", cat.Key)
		default:
			log.Error("error loading page", "category", cat.Key, "error", err)
		}
		return nil
	}

	fields, err := s.Extractor.Extract(ctx, page, cat.Mode, cat.Filter)
	if err != nil {
		log.Error("extraction error", "category", cat.Key, "error", err)
		return nil
	}
	return fields
}

func categoryLabel(cat models.Category) string {
	if cat.Label != "" {
		return cat.Label
	}
	return cat.Key
}
