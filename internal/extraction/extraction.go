// Package extraction turns rendered BondSports pages into card fields.
//
// Cards are read in two tiers. Tier 1 walks the card's labeled field list;
// tier 2, used only for event session lists, scans the card's text lines
// when tier 1 did not yield a title plus a date or time.
package extraction

import (
	"context"
	"time"

	"github.com/williampepple1/bondsports-scraper/internal/config"
	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

// Logger is the levelled logging capability the engine writes diagnostics to.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Extractor handles card location and field extraction
type Extractor struct {
	Selectors   config.Selectors
	WaitTimeout time.Duration
	Log         Logger
}

// NewExtractor creates a new extractor
func NewExtractor(selectors config.Selectors, waitTimeout time.Duration, log Logger) *Extractor {
	return &Extractor{
		Selectors:   selectors,
		WaitTimeout: waitTimeout,
		Log:         log,
	}
}

// Extract locates the cards on doc and returns the fields of every titled
// card, in page order. filter restricts season cards by title.
func (e *Extractor) Extract(ctx context.Context, doc dom.Document, mode models.Mode, filter string) ([]Fields, error) {
	cards, err := e.LocateCards(ctx, doc, mode)
	if err != nil {
		return nil, err
	}

	out := make([]Fields, 0, len(cards))
	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f := e.ExtractFields(ctx, card, mode)
		if f.Title == "" {
			e.Log.Debug("skipping card without title", "index", i)
			continue
		}
		if mode == models.ModeSeasonCards && !MatchesFilter(f.Title, filter) {
			e.Log.Debug("skipping card not matching filter", "index", i, "title", f.Title, "filter", filter)
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
