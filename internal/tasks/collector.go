package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// collectPause spaces consecutive per-list fetches. Graph throttles bursts
// of per-resource requests, so lists are walked sequentially with a gap.
const collectPause = 150 * time.Millisecond

// Source is the slice of the remote API the collector reads from.
type Source interface {
	Incomplete(ctx context.Context, listID string) ([]Item, error)
	RecentlyCompleted(ctx context.Context, listID string) ([]Item, error)
}

// Result is a best-effort aggregate: items from every list that answered,
// one error per list that did not.
type Result struct {
	Items  []Item
	Errors []error
}

type Collector struct {
	source Source
	pause  time.Duration
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

type CollectorOption func(*Collector)

// WithPause overrides the inter-list gap, for tests.
func WithPause(d time.Duration) CollectorOption {
	return func(c *Collector) { c.pause = d }
}

// WithCollectorClock overrides the time source, for tests.
func WithCollectorClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

// WithSleep overrides how the collector waits, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) CollectorOption {
	return func(c *Collector) { c.sleep = fn }
}

func WithCollectorLogger(l *slog.Logger) CollectorOption {
	return func(c *Collector) { c.logger = l }
}

func NewCollector(source Source, opts ...CollectorOption) *Collector {
	c := &Collector{
		source: source,
		pause:  collectPause,
		now:    time.Now,
		sleep:  sleepCtx,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect walks the lists strictly in order, pausing before each fetch after
// the first. A list's two sub-queries (incomplete and recently completed)
// run in parallel; a list that fails contributes nothing and does not stop
// its siblings. Items keep list order, then per-list fetch order with
// incomplete ahead of completed.
func (c *Collector) Collect(ctx context.Context, lists []List) Result {
	var res Result
	fetched := 0
	for _, list := range lists {
		if list.Flagged() {
			continue
		}
		if fetched > 0 {
			if err := c.sleep(ctx, c.pause); err != nil {
				res.Errors = append(res.Errors, err)
				return res
			}
		}
		fetched++

		items, err := c.collectOne(ctx, list)
		if err != nil {
			c.logger.Warn("collecting list", "list", list.DisplayName, "err", err)
			res.Errors = append(res.Errors, fmt.Errorf("list %s: %w", list.DisplayName, err))
			continue
		}
		res.Items = append(res.Items, items...)
	}
	return res
}

func (c *Collector) collectOne(ctx context.Context, list List) ([]Item, error) {
	var incomplete, completed []Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomplete, err = c.source.Incomplete(gctx, list.ID)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = c.source.RecentlyCompleted(gctx, list.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := c.now()
	eod := endOfDay(now)
	sod := startOfDay(now)

	var items []Item
	for _, it := range incomplete {
		if relevantIncomplete(it, eod) {
			items = append(items, annotate(it, list))
		}
	}
	for _, it := range completed {
		if relevantCompleted(it, sod, eod) {
			items = append(items, annotate(it, list))
		}
	}
	return items, nil
}

// relevantIncomplete keeps open tasks due today or earlier; with no due
// date the creation date stands in, so long-lived undated tasks stay
// visible while far-future ones drop out.
func relevantIncomplete(it Item, eod time.Time) bool {
	deadline := it.DueAt
	if deadline.IsZero() {
		deadline = it.CreatedAt
	}
	return !deadline.After(eod)
}

// relevantCompleted keeps tasks created within the current local day.
func relevantCompleted(it Item, sod, eod time.Time) bool {
	return !it.CreatedAt.Before(sod) && !it.CreatedAt.After(eod)
}

func annotate(it Item, list List) Item {
	it.ListID = list.ID
	it.ListName = list.DisplayName
	it.WellKnown = list.WellKnown
	return it
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
