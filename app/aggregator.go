package app

import (
	"context"
	"errors"
	"fmt"
	"gator/domain"
	"gator/internal/logger"
	"sync"
	"time"
)

var ErrAlreadyRunning = errors.New("aggregator already running")

// CycleReport describes one poll cycle. Feed is nil when there was nothing
// to fetch.
type CycleReport struct {
	Feed   *domain.Feed
	Result domain.IngestResult
	Err    error
}

// AggregatorService polls one feed per tick: the one fetched longest ago.
type AggregatorService struct {
	feeds    domain.FeedScheduleStore
	fetcher  domain.RSSFetcher
	ingestor *Ingestor

	mu             sync.Mutex
	interval       time.Duration
	tickerStopChan chan struct{}
	started        bool

	cycles      int
	lastCycleAt *time.Time
	lastFeed    string
	lastResult  domain.IngestResult
	lastError   string
}

func NewAggregator(feeds domain.FeedScheduleStore, posts domain.PostStore, fetcher domain.RSSFetcher, interval time.Duration) *AggregatorService {
	return &AggregatorService{
		feeds:          feeds,
		fetcher:        fetcher,
		ingestor:       NewIngestor(posts),
		interval:       interval,
		tickerStopChan: make(chan struct{}),
	}
}

// Run performs a cycle right away and then one per interval until ctx is
// cancelled. Cancellation is only observed between cycles; a cycle in
// progress always completes its bookkeeping.
func (a *AggregatorService) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.started = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.started = false
		a.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		a.Cycle(context.WithoutCancel(ctx))
		if !a.wait(ctx) {
			return nil
		}
	}
}

// wait blocks until the next tick. A SetInterval call restarts the wait
// with the new interval. It reports false once ctx is done.
func (a *AggregatorService) wait(ctx context.Context) bool {
	for {
		a.mu.Lock()
		interval := a.interval
		stopCh := a.tickerStopChan
		a.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-stopCh:
			timer.Stop()
			continue
		case <-timer.C:
			return true
		}
	}
}

// Cycle selects the next feed, marks it fetched, fetches it and ingests its
// items. Failures are logged and reported, never returned as a panic or
// error to the loop.
func (a *AggregatorService) Cycle(ctx context.Context) (rep CycleReport) {
	defer func() {
		if r := recover(); r != nil {
			rep.Err = fmt.Errorf("cycle panicked: %v", r)
			logger.Errorw("poll cycle panicked", "panic", r)
		}
		a.record(rep)
	}()

	feed, err := a.feeds.GetNextFeedToFetch(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Infof("no feeds to fetch")
		return rep
	}
	if err != nil {
		rep.Err = fmt.Errorf("could not select next feed: %w", err)
		logger.Errorw("could not select next feed", "error", err)
		return rep
	}
	rep.Feed = &feed

	if _, err := a.feeds.MarkFeedFetched(ctx, feed.ID); err != nil {
		rep.Err = fmt.Errorf("could not mark feed %s fetched: %w", feed.Name, err)
		logger.Errorw("could not mark feed fetched", "feed", feed.Name, "url", feed.URL, "error", err)
		return rep
	}

	ch, err := a.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		rep.Err = err
		logger.Errorw("could not fetch feed", "feed", feed.Name, "url", feed.URL, "error", err)
		return rep
	}

	rep.Result, err = a.ingestor.Ingest(ctx, feed.ID, ch.Items)
	if err != nil {
		rep.Err = err
		logger.Errorw("could not ingest feed", "feed", feed.Name, "url", feed.URL,
			"saved", rep.Result.Saved, "skipped", rep.Result.Skipped, "error", err)
		return rep
	}
	logger.Infow("feed collected", "feed", feed.Name, "items", len(ch.Items),
		"saved", rep.Result.Saved, "skipped", rep.Result.Skipped, "failed", rep.Result.Failed)
	return rep
}

func (a *AggregatorService) record(rep CycleReport) {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cycles++
	a.lastCycleAt = &now
	a.lastFeed = ""
	if rep.Feed != nil {
		a.lastFeed = rep.Feed.Name
	}
	a.lastResult = rep.Result
	a.lastError = ""
	if rep.Err != nil {
		a.lastError = rep.Err.Error()
	}
}

// SetInterval changes the tick period. A pending wait is restarted with the
// new value.
func (a *AggregatorService) SetInterval(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = d
	close(a.tickerStopChan)
	a.tickerStopChan = make(chan struct{})
}

func (a *AggregatorService) CurrentInterval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

func (a *AggregatorService) Status() domain.AggregatorStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.AggregatorStatus{
		Running:     a.started,
		Interval:    a.interval,
		Cycles:      a.cycles,
		LastCycleAt: a.lastCycleAt,
		LastFeed:    a.lastFeed,
		LastResult:  a.lastResult,
		LastError:   a.lastError,
	}
}
