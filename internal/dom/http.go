package dom

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// HTTPOptions configures the plain HTTP driver
type HTTPOptions struct {
	UserAgents []string
	// Transport is used as-is when set, e.g. one carrying a proxy.
	Transport http.RoundTripper
}

// HTTPBrowser fetches pages without executing JavaScript and parses them
// with goquery. Only server-rendered or saved pages yield cards.
type HTTPBrowser struct {
	client     *http.Client
	userAgents []string
}

// NewHTTPBrowser creates a new HTTP driver
func NewHTTPBrowser(opts HTTPOptions) *HTTPBrowser {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &HTTPBrowser{
		client:     &http.Client{Transport: transport},
		userAgents: opts.UserAgents,
	}
}

func (b *HTTPBrowser) NewPage(ctx context.Context) (Page, error) {
	return &httpPage{browser: b}, nil
}

func (b *HTTPBrowser) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

type httpPage struct {
	browser *HTTPBrowser
	doc     *StaticScope
}

func (p *httpPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	p.doc = nil

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	// Set a random user agent if available
	if len(p.browser.userAgents) > 0 {
		req.Header.Set("User-Agent", p.browser.userAgents[rand.Intn(len(p.browser.userAgents))])
	}

	resp, err := p.browser.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: loading %s", ErrTimeout, url)
		}
		return fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := ParseHTML(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: reading %s", ErrTimeout, url)
		}
		return err
	}
	p.doc = doc
	return nil
}

func (p *httpPage) current() (*StaticScope, error) {
	if p.doc == nil {
		return nil, errors.New("dom: no page loaded")
	}
	return p.doc, nil
}

func (p *httpPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	doc, err := p.current()
	if err != nil {
		return err
	}
	return doc.WaitFor(ctx, selector, timeout)
}

func (p *httpPage) Count(ctx context.Context, selector string) (int, error) {
	doc, err := p.current()
	if err != nil {
		return 0, err
	}
	return doc.Count(ctx, selector)
}

func (p *httpPage) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	doc, err := p.current()
	if err != nil {
		return nil, err
	}
	return doc.Nth(ctx, selector, i)
}

func (p *httpPage) Text(ctx context.Context, selector string) (string, bool, error) {
	doc, err := p.current()
	if err != nil {
		return "", false, err
	}
	return doc.Text(ctx, selector)
}

func (p *httpPage) Close() error {
	p.doc = nil
	return nil
}
