package poll

import (
	"context"
	"time"

	"any2text/internal/model"
)

const (
	// Cadence the reference frontend uses: jobs refresh quickly, crawls
	// cover many children and poll slower.
	DefaultJobInterval   = 1500 * time.Millisecond
	DefaultCrawlInterval = 3 * time.Second
)

// SleepFunc waits for d or until ctx is cancelled. Injectable so tests
// run without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// JobFetcher retrieves one job snapshot.
type JobFetcher func(ctx context.Context, id string) (model.Job, error)

// Watcher polls a single job until it reaches a terminal status. At
// most one fetch is in flight at a time; a transport or non-2xx failure
// is reported through OnTransient and retried after the same interval,
// never treated as the job failing. Cancellation is checked between
// polls, not mid-fetch.
type Watcher struct {
	Fetch       JobFetcher
	Interval    time.Duration
	Sleep       SleepFunc
	OnTransient func(err error)
}

// Watch fetches snapshots in order, invoking onSnapshot for each
// successful fetch, and returns the terminal snapshot. A job that is
// already terminal on the first fetch yields exactly one snapshot. A
// snapshot whose status regresses against the job state machine (a
// stale replica answering a read) is skipped like a transient failure.
// The returned error is non-nil only for cancellation; the job's own
// error status arrives as a normal terminal snapshot.
func (w Watcher) Watch(ctx context.Context, id string, onSnapshot func(model.Job)) (model.Job, error) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultJobInterval
	}
	sleep := w.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	var last model.Job
	for {
		snap, err := w.Fetch(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			if w.OnTransient != nil {
				w.OnTransient(err)
			}
		} else if err := model.TransitionJobStatus(&last, snap.Status); err != nil {
			if w.OnTransient != nil {
				w.OnTransient(err)
			}
		} else {
			last = snap
			if onSnapshot != nil {
				onSnapshot(snap)
			}
			if model.IsTerminal(snap.Status) {
				return snap, nil
			}
		}

		if err := sleep(ctx, interval); err != nil {
			return last, err
		}
	}
}

// CrawlFetcher retrieves one crawl snapshot.
type CrawlFetcher func(ctx context.Context, id string) (model.ChannelCrawl, error)

// CrawlWatcher polls a channel crawl with the same discipline as
// Watcher, merging each raw snapshot through a CrawlAggregate so child
// jobs are keyed by id and never dropped by an incomplete payload.
type CrawlWatcher struct {
	Fetch       CrawlFetcher
	Interval    time.Duration
	Sleep       SleepFunc
	OnTransient func(err error)
}

// Watch polls until the crawl itself is terminal. onSnapshot receives
// the merged aggregate view after each successful fetch.
func (w CrawlWatcher) Watch(ctx context.Context, id string, onSnapshot func(model.ChannelCrawl)) (model.ChannelCrawl, error) {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultCrawlInterval
	}
	sleep := w.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	agg := model.NewCrawlAggregate()
	var last model.ChannelCrawl
	for {
		snap, err := w.Fetch(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			if w.OnTransient != nil {
				w.OnTransient(err)
			}
		} else {
			last = agg.Apply(snap)
			if onSnapshot != nil {
				onSnapshot(last)
			}
			if model.IsTerminal(last.Status) {
				return last, nil
			}
		}

		if err := sleep(ctx, interval); err != nil {
			return last, err
		}
	}
}
