package extraction

import (
	"context"
	"fmt"

	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/pkg/models"
)

// markers returns the selector to wait for and the card container selector for mode
func (e *Extractor) markers(mode models.Mode) (wait, card string) {
	if mode == models.ModeSeasonCards {
		return e.Selectors.SeasonHeading, e.Selectors.SeasonCard
	}
	return e.Selectors.EventSession, e.Selectors.EventSession
}

// LocateCards waits for the rendered marker of mode and returns the card
// containers in document order. A marker that never appears yields no cards
// and no error.
func (e *Extractor) LocateCards(ctx context.Context, doc dom.Document, mode models.Mode) ([]dom.Scope, error) {
	waitSel, cardSel := e.markers(mode)

	if err := doc.WaitFor(ctx, waitSel, e.WaitTimeout); err != nil {
		if dom.IsTimeout(err) {
			e.Log.Info("no cards rendered before timeout", "selector", waitSel, "timeout", e.WaitTimeout)
			return nil, nil
		}
		return nil, fmt.Errorf("waiting for cards: %w", err)
	}

	total, err := doc.Count(ctx, cardSel)
	if err != nil {
		return nil, fmt.Errorf("counting cards: %w", err)
	}
	e.Log.Info("found cards", "mode", mode, "count", total)

	cards := make([]dom.Scope, 0, total)
	for i := 0; i < total; i++ {
		card, err := doc.Nth(ctx, cardSel, i)
		if err != nil {
			e.Log.Debug("card vanished before it could be read", "index", i, "error", err)
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}
