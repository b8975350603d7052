package dom

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// StaticScope is a Scope over an already parsed document. It backs the
// HTTP driver and is handy for feeding saved pages to the extractor.
type StaticScope struct {
	sel *goquery.Selection
}

// NewStaticScope wraps a goquery selection
func NewStaticScope(sel *goquery.Selection) *StaticScope {
	return &StaticScope{sel: sel}
}

// ParseHTML parses r into a document-level StaticScope
func ParseHTML(r io.Reader) (*StaticScope, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return NewStaticScope(doc.Selection), nil
}

// ParseHTMLString is ParseHTML for an in-memory string
func ParseHTMLString(s string) (*StaticScope, error) {
	return ParseHTML(strings.NewReader(s))
}

func (s *StaticScope) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.sel.Find(selector).Length(), nil
}

func (s *StaticScope) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found := s.sel.Find(selector)
	if i < 0 || i >= found.Length() {
		return nil, fmt.Errorf("%w: %s[%d] of %d", ErrNoMatch, selector, i, found.Length())
	}
	return &StaticScope{sel: found.Eq(i)}, nil
}

func (s *StaticScope) Text(ctx context.Context, selector string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	target := s.sel
	if selector != "" {
		target = s.sel.Find(selector).First()
	}
	if target.Length() == 0 {
		return "", false, nil
	}
	return InnerText(target.Get(0)), true, nil
}

// WaitFor returns immediately: a static document never gains elements.
func (s *StaticScope) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	n, err := s.Count(ctx, selector)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: waiting for %s", ErrTimeout, selector)
	}
	return nil
}
