package scrape

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hazyhaar/dealscout/extract"
	"github.com/hazyhaar/dealscout/fetch"
	"github.com/hazyhaar/dealscout/product"
	"github.com/hazyhaar/dealscout/source"
)

// Status is the terminal state of one source session.
type Status string

const (
	StatusOK      Status = "ok"      // includes "ok but zero products"
	StatusTimeout Status = "timeout" // navigation exceeded its budget
	StatusError   Status = "error"   // any other failure
)

// Result is what the orchestrator collects from one source session.
type Result struct {
	Source   *source.Source
	Products []product.Product
	Status   Status
}

// Timeouts groups the session budgets and delays.
type Timeouts struct {
	// Nav bounds navigation plus page load.
	Nav time.Duration
	// WaitSelector bounds the optional ready-selector wait. A timeout here
	// is swallowed: some sources render fine without ever matching.
	WaitSelector time.Duration
	// DefaultSettle is the post-load delay for sources without their own.
	DefaultSettle time.Duration
	// RetrySettle is the extra delay before the single empty-result retry.
	RetrySettle time.Duration
}

func (t *Timeouts) defaults() {
	if t.Nav <= 0 {
		t.Nav = 35 * time.Second
	}
	if t.WaitSelector <= 0 {
		t.WaitSelector = 12 * time.Second
	}
	if t.DefaultSettle <= 0 {
		t.DefaultSettle = 1600 * time.Millisecond
	}
	if t.RetrySettle <= 0 {
		t.RetrySettle = 1400 * time.Millisecond
	}
}

// session drives one source for one query. Failures never propagate: they
// are folded into the Result status so one flaky source cannot touch the
// rest of the fan-out.
type session struct {
	engine   Engine
	fetcher  *fetch.Client
	src      *source.Source
	timeouts Timeouts
	logger   *slog.Logger
}

func (s *session) run(ctx context.Context, query string, maxItems int, includeAuctions bool) Result {
	products, err := s.scrape(ctx, query, maxItems, includeAuctions)
	switch {
	case err == nil:
		return Result{Source: s.src, Products: products, Status: StatusOK}
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("scrape: source timeout", "source", s.src.ID)
		return Result{Source: s.src, Status: StatusTimeout}
	default:
		s.logger.Warn("scrape: source error", "source", s.src.ID, "error", err)
		return Result{Source: s.src, Status: StatusError}
	}
}

func (s *session) scrape(ctx context.Context, query string, maxItems int, includeAuctions bool) ([]product.Product, error) {
	searchURL := s.src.SearchFor(query, includeAuctions)

	var raw []extract.RawCandidate
	var err error
	if s.src.Static {
		raw, err = s.scrapeStatic(ctx, searchURL)
	} else {
		raw, err = s.scrapeRendered(ctx, searchURL)
	}
	if err != nil {
		return nil, err
	}

	return product.Coerce(raw, s.src, query, maxItems), nil
}

// scrapeRendered drives a browser page through navigate, optional selector
// wait, settle and extract. An empty extraction gets one retry after an
// extra settle, for sources that render results late.
func (s *session) scrapeRendered(ctx context.Context, searchURL string) ([]extract.RawCandidate, error) {
	page, err := s.engine.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.Navigate(ctx, searchURL, s.timeouts.Nav); err != nil {
		return nil, err
	}

	if s.src.WaitFor != "" {
		if err := page.WaitVisible(ctx, s.src.WaitFor, s.timeouts.WaitSelector); err != nil {
			s.logger.Debug("scrape: ready selector never matched", "source", s.src.ID, "error", err)
		}
	}
	if err := settle(ctx, s.src.Settle(s.timeouts.DefaultSettle)); err != nil {
		return nil, err
	}

	extractor := extract.ForSource(s.src.ID)
	raw, err := extractor.Extract(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		if err := settle(ctx, s.timeouts.RetrySettle); err != nil {
			return nil, err
		}
		raw, err = extractor.Extract(ctx, page)
		if err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// scrapeStatic fetches the search page over plain HTTP and walks the HTML.
// No retry: a static page will not grow results by waiting.
func (s *session) scrapeStatic(ctx context.Context, searchURL string) ([]extract.RawCandidate, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeouts.Nav)
	defer cancel()

	body, err := s.fetcher.Get(fetchCtx, searchURL)
	if err != nil {
		return nil, err
	}
	return extract.Static(body)
}

// settle waits for d without outliving the context.
func settle(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
