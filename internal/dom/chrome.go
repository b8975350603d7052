package dom

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// queryTimeout bounds single DOM queries on a page that has already rendered
const queryTimeout = 10 * time.Second

// ChromeOptions configures the chromedp driver
type ChromeOptions struct {
	Headless    bool
	UserAgent   string
	ExecPath    string
	ProxyServer string
	// SettleTime is slept after each navigation so late XHR-driven content can render.
	SettleTime time.Duration
}

// ChromeBrowser drives a headless Chrome through chromedp
type ChromeBrowser struct {
	ctx           context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	settle        time.Duration
}

// NewChromeBrowser starts Chrome. The browser lives until Close or until
// ctx is cancelled.
func NewChromeBrowser(ctx context.Context, opts ChromeOptions) (*ChromeBrowser, error) {
	// Configure browser options
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.ProxyServer != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.ProxyServer))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Run with no actions launches the browser
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	return &ChromeBrowser{
		ctx:           browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
		settle:        opts.SettleTime,
	}, nil
}

// NewPage opens a new tab
func (b *ChromeBrowser) NewPage(ctx context.Context) (Page, error) {
	tabCtx, cancel := chromedp.NewContext(b.ctx)
	// The tab must be created on an undecorated context; a timeout context
	// here would close the tab when it fires.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	return &chromePage{tab: tabCtx, cancel: cancel, settle: b.settle}, nil
}

func (b *ChromeBrowser) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}

type chromePage struct {
	tab    context.Context
	cancel context.CancelFunc
	settle time.Duration
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (p *chromePage) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(p.tab, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (p *chromePage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if p.settle > 0 {
		actions = append(actions, chromedp.Sleep(p.settle))
	}
	if err := p.run(ctx, timeout, actions...); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (p *chromePage) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := p.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return nil
}

func (p *chromePage) root() *chromeScope {
	return &chromeScope{page: p}
}

func (p *chromePage) Count(ctx context.Context, selector string) (int, error) {
	return p.root().Count(ctx, selector)
}

func (p *chromePage) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	return p.root().Nth(ctx, selector, i)
}

func (p *chromePage) Text(ctx context.Context, selector string) (string, bool, error) {
	return p.root().Text(ctx, selector)
}

func (p *chromePage) Close() error {
	p.cancel()
	return nil
}

// chromeScope is rooted at node, or at the document when node is nil
type chromeScope struct {
	page *chromePage
	node *cdp.Node
}

func (s *chromeScope) nodes(ctx context.Context, selector string) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	opts := []chromedp.QueryOption{chromedp.ByQueryAll, chromedp.AtLeast(0)}
	if s.node != nil {
		opts = append(opts, chromedp.FromNode(s.node))
	}
	if err := s.page.run(ctx, queryTimeout, chromedp.Nodes(selector, &nodes, opts...)); err != nil {
		return nil, fmt.Errorf("querying %s: %w", selector, err)
	}
	return nodes, nil
}

func (s *chromeScope) Count(ctx context.Context, selector string) (int, error) {
	nodes, err := s.nodes(ctx, selector)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func (s *chromeScope) Nth(ctx context.Context, selector string, i int) (Scope, error) {
	nodes, err := s.nodes(ctx, selector)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(nodes) {
		return nil, fmt.Errorf("%w: %s[%d] of %d", ErrNoMatch, selector, i, len(nodes))
	}
	return &chromeScope{page: s.page, node: nodes[i]}, nil
}

func (s *chromeScope) Text(ctx context.Context, selector string) (string, bool, error) {
	target := s.node
	if selector != "" || target == nil {
		if selector == "" {
			selector = "body"
		}
		nodes, err := s.nodes(ctx, selector)
		if err != nil {
			return "", false, err
		}
		if len(nodes) == 0 {
			return "", false, nil
		}
		target = nodes[0]
	}

	var text string
	err := s.page.run(ctx, queryTimeout,
		chromedp.Text([]cdp.NodeID{target.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", false, fmt.Errorf("reading text: %w", err)
	}
	return text, true, nil
}
