package dom

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightOptions configures the Playwright driver
type PlaywrightOptions struct {
	Headless    bool
	UserAgent   string
	ExecPath    string
	ProxyServer string
}

// PlaywrightBrowser drives Chromium through Playwright. Navigation waits for
// network idle instead of the load event.
type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// NewPlaywrightBrowser starts the Playwright driver and launches Chromium
func NewPlaywrightBrowser(opts PlaywrightOptions) (*PlaywrightBrowser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ExecPath != "" {
		launch.ExecutablePath = playwright.String(opts.ExecPath)
	}
	if opts.ProxyServer != "" {
		launch.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	bctx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	return &PlaywrightBrowser{pw: pw, browser: browser, context: bctx}, nil
}

func (b *PlaywrightBrowser) NewPage(ctx context.Context) (Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

// Close releases the context, the browser and the driver, returning the first error
func (b *PlaywrightBrowser) Close() error {
	errs := []error{
		b.context.Close(),
		b.browser.Close(),
		b.pw.Stop(),
	}
	return errors.Join(errs...)
}

func milliseconds(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func translate(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, translate(err))
	}
	return nil
}

func (p *playwrightPage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, translate(err))
	}
	return nil
}

func (p *playwrightPage) root() *locatorScope {
	return &locatorScope{
		find: func(selector string) playwright.Locator { return p.page.Locator(selector) },
		self: p.page.Locator("body"),
	}
}

func (p *playwrightPage) Count(ctx context.Context, selector string) (int, error) {
	return p.root().Count(ctx, selector)
}

func (p *playwrightPage) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	return p.root().Nth(ctx, selector, i)
}

func (p *playwrightPage) Text(ctx context.Context, selector string) (string, bool, error) {
	return p.root().Text(ctx, selector)
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

// locatorScope wraps a Playwright locator. Page.Locator and Locator.Locator
// take different option types, hence the find func.
type locatorScope struct {
	find func(selector string) playwright.Locator
	self playwright.Locator
}

func scopeOf(loc playwright.Locator) *locatorScope {
	return &locatorScope{
		find: func(selector string) playwright.Locator { return loc.Locator(selector) },
		self: loc,
	}
}

func (s *locatorScope) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := s.find(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", selector, translate(err))
	}
	return n, nil
}

func (s *locatorScope) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	n, err := s.Count(ctx, selector)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: %s[%d] of %d", ErrNoMatch, selector, i, n)
	}
	return scopeOf(s.find(selector).Nth(i)), nil
}

func (s *locatorScope) Text(ctx context.Context, selector string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	loc := s.self
	if selector != "" {
		loc = s.find(selector).First()
	}

	// InnerText on an empty locator blocks until the default timeout
	n, err := loc.Count()
	if err != nil {
		return "", false, fmt.Errorf("counting %s: %w", selector, translate(err))
	}
	if n == 0 {
		return "", false, nil
	}

	text, err := loc.InnerText()
	if err != nil {
		return "", false, fmt.Errorf("reading text of %s: %w", selector, translate(err))
	}
	return text, true, nil
}
