package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/williampepple1/bondsports-scraper/internal/config"
	"github.com/williampepple1/bondsports-scraper/internal/dom"
	"github.com/williampepple1/bondsports-scraper/internal/proxy"
)

// NewBrowser acquires the DOM driver selected by the configuration
func NewBrowser(ctx context.Context, cfg *config.AppConfig) (dom.Browser, error) {
	proxies := proxy.NewManager(&cfg.Proxies)

	switch cfg.Browser.Engine {
	case config.EngineHTTP:
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if _, err := proxies.ApplyToTransport(transport); err != nil {
			return nil, fmt.Errorf("applying proxy: %w", err)
		}
		return dom.NewHTTPBrowser(dom.HTTPOptions{
			UserAgents: cfg.Scraper.UserAgents,
			Transport:  transport,
		}), nil

	case config.EnginePlaywright:
		server, err := proxies.ServerAddress()
		if err != nil {
			return nil, fmt.Errorf("applying proxy: %w", err)
		}
		browser, err := dom.NewPlaywrightBrowser(dom.PlaywrightOptions{
			Headless:    cfg.Browser.Headless,
			UserAgent:   cfg.Browser.UserAgent,
			ExecPath:    cfg.Browser.ExecPath,
			ProxyServer: server,
		})
		if err != nil {
			return nil, err
		}
		return browser, nil

	case config.EngineChromedp, "":
		server, err := proxies.ServerAddress()
		if err != nil {
			return nil, fmt.Errorf("applying proxy: %w", err)
		}
		browser, err := dom.NewChromeBrowser(ctx, dom.ChromeOptions{
			Headless:    cfg.Browser.Headless,
			UserAgent:   cfg.Browser.UserAgent,
			ExecPath:    cfg.Browser.ExecPath,
			ProxyServer: server,
			SettleTime:  cfg.Browser.SettleTime,
		})
		if err != nil {
			return nil, err
		}
		return browser, nil

	default:
		return nil, fmt.Errorf("unknown browser engine %q", cfg.Browser.Engine)
	}
}
