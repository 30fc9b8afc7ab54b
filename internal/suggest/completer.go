package suggest

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const (
	// QuietWindow is how long typing must pause before a lookup fires.
	QuietWindow = 200 * time.Millisecond
	// MaxSuggestions caps the dropdown.
	MaxSuggestions = 8
)

// Fetcher is the lookup transport.
type Fetcher interface {
	Suggestions(ctx context.Context, query string) ([]string, error)
}

// Completer turns a stream of keystrokes into at most one lookup per quiet
// window and hands results to deliver. A blank input clears suggestions
// without touching the network. Lookups that fail or time out clear
// silently. Results are delivered in completion order; a slow lookup can
// overwrite a newer one, which matches how the feature has always behaved.
type Completer struct {
	fetcher  Fetcher
	deliver  func([]string)
	debounce *Debouncer
	timeout  time.Duration
	logger   *slog.Logger
}

type CompleterOption func(*Completer)

// WithQuietWindow overrides the debounce window, for tests.
func WithQuietWindow(d time.Duration) CompleterOption {
	return func(c *Completer) { c.debounce = NewDebouncer(d) }
}

// WithTimeout overrides the per-lookup ceiling, for tests.
func WithTimeout(d time.Duration) CompleterOption {
	return func(c *Completer) { c.timeout = d }
}

func WithCompleterLogger(l *slog.Logger) CompleterOption {
	return func(c *Completer) { c.logger = l }
}

// NewCompleter wires a fetcher to a delivery callback. deliver runs on the
// lookup goroutine; callers hand the result to their own event loop.
func NewCompleter(fetcher Fetcher, deliver func([]string), opts ...CompleterOption) *Completer {
	c := &Completer{
		fetcher:  fetcher,
		deliver:  deliver,
		debounce: NewDebouncer(QuietWindow),
		timeout:  RequestTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input feeds the current text of the search box.
func (c *Completer) Input(text string) {
	if strings.TrimSpace(text) == "" {
		c.debounce.Cancel()
		c.deliver(nil)
		return
	}
	c.debounce.Trigger(func() { c.lookup(text) })
}

// Cancel drops any pending lookup, e.g. when the search box closes.
func (c *Completer) Cancel() {
	c.debounce.Cancel()
}

func (c *Completer) lookup(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	got, err := c.fetcher.Suggestions(ctx, text)
	if err != nil {
		c.logger.Debug("suggestion lookup failed", "query", text, "err", err)
		c.deliver(nil)
		return
	}
	if len(got) > MaxSuggestions {
		got = got[:MaxSuggestions]
	}
	c.deliver(got)
}
