package scrape

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/dealscout/fetch"
	"github.com/hazyhaar/dealscout/product"
	"github.com/hazyhaar/dealscout/source"
)

// Request is one search across all configured sources.
type Request struct {
	Query             string
	MaxItemsPerSource int
	IncludeAuctions   bool
	SortBy            string
}

// Event is one streaming search event: a Progress per completed source,
// then exactly one Done.
type Event interface{ event() }

// Progress reports one source finishing, in completion order.
type Progress struct {
	Type       string `json:"type"`
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Status     Status `json:"status"`
	Found      int    `json:"found"`
}

func (Progress) event() {}

// Done carries the final sorted result set and the elapsed seconds.
type Done struct {
	Type    string            `json:"type"`
	Elapsed float64           `json:"elapsed"`
	Results []product.Product `json:"results"`
}

func (Done) event() {}

// Config configures an Orchestrator.
type Config struct {
	Sources []source.Source

	// Workers bounds how many sources are scraped at once. Default 6.
	Workers int

	Timeouts Timeouts

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Workers <= 0 {
		c.Workers = 6
	}
	c.Timeouts.defaults()
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Orchestrator fans one query out across every configured source with a
// bounded worker budget. Sessions are independent: a slow or failing source
// never blocks or cancels another, and there is no cross-source deadline
// beyond each session's own navigation budget.
type Orchestrator struct {
	engine  Engine
	fetcher *fetch.Client
	cfg     Config
}

// New creates an Orchestrator. The engine may be nil when every configured
// source is static.
func New(engine Engine, fetcher *fetch.Client, cfg Config) *Orchestrator {
	cfg.defaults()
	if fetcher == nil {
		fetcher = fetch.New(fetch.WithLogger(cfg.Logger))
	}
	return &Orchestrator{engine: engine, fetcher: fetcher, cfg: cfg}
}

// Sources returns the configured source catalog.
func (o *Orchestrator) Sources() []source.Source {
	return o.cfg.Sources
}

// Search runs the fan-out to completion and returns the sorted product list
// plus one per-source result in completion order.
func (o *Orchestrator) Search(ctx context.Context, req Request) ([]product.Product, []Result) {
	started := time.Now()
	results := o.fanOut(ctx, req, nil)

	var all []product.Product
	for _, r := range results {
		all = append(all, r.Products...)
	}
	sorted := product.Sort(all, req.Query, product.NormalizeSort(req.SortBy))

	o.cfg.Logger.Info("scrape: search completed",
		"query", req.Query,
		"products", len(sorted),
		"sources", len(o.cfg.Sources),
		"elapsed", time.Since(started).Round(10*time.Millisecond))
	return sorted, results
}

// SearchStream runs the fan-out and emits events on the returned channel:
// one Progress as each source completes, then a single Done carrying the
// same sorted results a batch Search would produce. The channel is closed
// after the Done event. It is buffered for the full event count, so a
// consumer that stops reading (a dropped SSE client) never blocks the
// producer or the workers behind it.
func (o *Orchestrator) SearchStream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, len(o.cfg.Sources)+1)
	go func() {
		defer close(events)
		started := time.Now()
		total := len(o.cfg.Sources)

		results := o.fanOut(ctx, req, func(res Result, completed int) {
			events <- Progress{
				Type:       "progress",
				Provider:   res.Source.Name,
				ProviderID: res.Source.ID,
				Completed:  completed,
				Total:      total,
				Status:     res.Status,
				Found:      len(res.Products),
			}
		})

		var all []product.Product
		for _, r := range results {
			all = append(all, r.Products...)
		}
		sorted := product.Sort(all, req.Query, product.NormalizeSort(req.SortBy))

		elapsed := math.Round(time.Since(started).Seconds()*100) / 100
		events <- Done{Type: "done", Elapsed: elapsed, Results: sorted}
	}()
	return events
}

// fanOut runs one session per source, at most cfg.Workers at a time, and
// collects results in completion order. onResult, when set, is invoked
// serially as each source completes.
func (o *Orchestrator) fanOut(ctx context.Context, req Request, onResult func(Result, int)) []Result {
	var g errgroup.Group
	g.SetLimit(o.cfg.Workers)

	var mu sync.Mutex
	results := make([]Result, 0, len(o.cfg.Sources))

	for i := range o.cfg.Sources {
		src := &o.cfg.Sources[i]
		g.Go(func() error {
			sess := &session{
				engine:   o.engine,
				fetcher:  o.fetcher,
				src:      src,
				timeouts: o.cfg.Timeouts,
				logger:   o.cfg.Logger,
			}
			res := sess.run(ctx, req.Query, req.MaxItemsPerSource, req.IncludeAuctions)

			mu.Lock()
			results = append(results, res)
			completed := len(results)
			if onResult != nil {
				onResult(res, completed)
			}
			mu.Unlock()
			return nil
		})
	}

	// Sessions fold their failures into statuses, so Wait never errors.
	_ = g.Wait()
	return results
}
