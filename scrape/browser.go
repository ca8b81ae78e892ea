// Package scrape runs live product searches: one session per source drives
// a page through navigate, settle and extract, and the orchestrator fans
// sessions out across all configured sources under a bounded worker budget.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/dealscout/extract"
)

// Page drives one rendered page. It embeds the Eval capability extractors
// run against.
type Page interface {
	extract.Page
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Close() error
}

// Engine opens isolated pages. Each session gets its own page in its own
// browser context, so cookies and storage never leak across sources.
type Engine interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// RodConfig configures the Chrome-backed engine.
type RodConfig struct {
	// Headless controls whether Chrome runs without a display. Default true.
	Headless bool

	Logger *slog.Logger
}

// RodEngine drives a local Chrome via go-rod with stealth pages.
type RodEngine struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	logger  *slog.Logger
}

// NewRodEngine launches Chrome and connects to it.
func NewRodEngine(cfg RodConfig) (*RodEngine, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	if err := b.IgnoreCertErrors(true); err != nil {
		cfg.Logger.Warn("browser: ignore cert errors failed", "error", err)
	}

	cfg.Logger.Info("browser: launched local chrome", "url", u, "headless", cfg.Headless)
	return &RodEngine{browser: b, lnch: l, logger: cfg.Logger}, nil
}

// NewPage opens a stealth page inside a fresh incognito context.
func (e *RodEngine) NewPage(ctx context.Context) (Page, error) {
	inc, err := e.browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("browser: incognito context: %w", err)
	}
	page, err := stealth.Page(inc)
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	return &rodPage{page: page, context: inc}, nil
}

// Close shuts Chrome down and cleans the launcher's temp data up.
func (e *RodEngine) Close() error {
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			e.logger.Warn("browser: close", "error", err)
		}
	}
	if e.lnch != nil {
		e.lnch.Cleanup()
	}
	return nil
}

// rodPage adapts a rod page to the Page interface.
type rodPage struct {
	page    *rod.Page
	context *rod.Browser
}

func (p *rodPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page := p.page.Context(navCtx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("browser: wait load %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := p.page.Context(waitCtx).Element(selector)
	if err != nil {
		return fmt.Errorf("browser: wait for %q: %w", selector, err)
	}
	if err := el.WaitVisible(); err != nil {
		return fmt.Errorf("browser: wait visible %q: %w", selector, err)
	}
	return nil
}

func (p *rodPage) Eval(ctx context.Context, script string, out any) error {
	res, err := p.page.Context(ctx).Eval(script)
	if err != nil {
		return fmt.Errorf("browser: eval: %w", err)
	}
	data, err := json.Marshal(res.Value)
	if err != nil {
		return fmt.Errorf("browser: encode eval result: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("browser: decode eval result: %w", err)
	}
	return nil
}

// Close releases the page and disposes its incognito context.
func (p *rodPage) Close() error {
	err := p.page.Close()
	if p.context != nil && p.context.BrowserContextID != "" {
		disposeErr := proto.TargetDisposeBrowserContext{
			BrowserContextID: p.context.BrowserContextID,
		}.Call(p.context)
		if err == nil {
			err = disposeErr
		}
	}
	return err
}
