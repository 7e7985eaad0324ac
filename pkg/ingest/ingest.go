// Package ingest runs ingestion batches: sample feeds, skip known links, extract
// events with a primary strategy and a fallback, normalize and store the records.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mappin-app/mappin/pkg/dedup"
	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/repository"
)

//go:generate moq -out mocks/feed_reader.go -pkg mocks -skip-ensure -fmt goimports . FeedReader
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// ErrBatchInProgress is returned when a batch is started while another one runs
var ErrBatchInProgress = errors.New("batch already in progress")

// FeedReader returns items of a feed, failures produce an empty list
type FeedReader interface {
	FetchFeed(ctx context.Context, f domain.Feed) []domain.FeedItem
}

// Extractor turns a feed item into an event, nil event means the item is not relevant
type Extractor interface {
	Extract(ctx context.Context, item domain.FeedItem) (*domain.ExtractedEvent, error)
}

// Store checks and writes conflict records
type Store interface {
	Exists(ctx context.Context, urlKey string) (bool, error)
	Create(ctx context.Context, c *domain.Conflict) error
}

// Notifier is told about every inserted record
type Notifier interface {
	Notify(ctx context.Context, c domain.Conflict) error
}

type outcome string

const (
	outcomeInserted  outcome = "inserted"
	outcomeDuplicate outcome = "duplicate"
	outcomeSkipped   outcome = "skipped"
	outcomeFailed    outcome = "failed"
)

// Params holds orchestrator dependencies. Primary is optional and rate limited by
// the batch InterItemDelay, Fallback is used when Primary is missing or fails.
type Params struct {
	Reader     FeedReader
	Primary    Extractor
	Fallback   Extractor
	Store      Store
	Notifiers  []Notifier
	DedupMode  dedup.Mode
	DroppedTTL time.Duration
	Metrics    *Metrics
}

// Orchestrator runs ingestion batches, one at a time per process
type Orchestrator struct {
	reader    FeedReader
	primary   Extractor
	fallback  Extractor
	store     Store
	notifiers []Notifier
	dedupMode dedup.Mode
	dropped   *droppedCache
	metrics   *Metrics

	mu      sync.Mutex // held for the whole batch
	shuffle func(n int, swap func(i, j int))
	now     func() time.Time
}

// NewOrchestrator makes an orchestrator
func NewOrchestrator(p Params) *Orchestrator {
	if p.DedupMode == "" {
		p.DedupMode = dedup.ModeNormalized
	}
	return &Orchestrator{
		reader:    p.Reader,
		primary:   p.Primary,
		fallback:  p.Fallback,
		store:     p.Store,
		notifiers: p.Notifiers,
		dedupMode: p.DedupMode,
		dropped:   newDroppedCache(0, p.DroppedTTL),
		metrics:   p.Metrics,
		shuffle:   rand.Shuffle,
		now:       time.Now,
	}
}

type batchCounters struct {
	processed, inserted, duplicates, skipped, errors int
}

func (b *batchCounters) add(o outcome) {
	b.processed++
	switch o {
	case outcomeInserted:
		b.inserted++
	case outcomeDuplicate:
		b.duplicates++
	case outcomeSkipped:
		b.skipped++
	case outcomeFailed:
		b.errors++
	}
}

// RunBatch processes a random sample of feeds sequentially. Item failures are
// counted and never stop the batch. Returns ErrBatchInProgress if another batch
// runs, and the context error if the batch was interrupted.
func (o *Orchestrator) RunBatch(ctx context.Context, feeds []domain.Feed, opts domain.BatchOptions) (domain.BatchSummary, error) {
	summary := domain.BatchSummary{RunID: uuid.NewString(), StartedAt: o.now().UTC()}
	if !o.mu.TryLock() {
		summary.Message = "batch already in progress"
		return summary, ErrBatchInProgress
	}
	defer o.mu.Unlock()

	selected := o.sample(feeds, opts.BatchSize)
	summary.Feeds = len(selected)
	lgr.Printf("[INFO] batch %s started, %d of %d feeds", summary.RunID, len(selected), len(feeds))

	limit := rate.Inf
	if opts.InterItemDelay > 0 {
		limit = rate.Every(opts.InterItemDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var counters batchCounters
	var runErr error
batch:
	for _, f := range selected {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		items := o.reader.FetchFeed(ctx, f)
		if opts.MaxItemsPerFeed > 0 && len(items) > opts.MaxItemsPerFeed {
			items = items[:opts.MaxItemsPerFeed]
		}
		lgr.Printf("[DEBUG] feed %s: %d items to process", f.Name, len(items))

		for _, item := range items {
			if err := ctx.Err(); err != nil {
				runErr = err
				break batch
			}
			res := o.processItem(ctx, item, limiter)
			counters.add(res)
			o.metrics.item(res)
		}
	}

	summary.Processed = counters.processed
	summary.Inserted = counters.inserted
	summary.Duplicates = counters.duplicates
	summary.Skipped = counters.skipped
	summary.Errors = counters.errors
	summary.Duration = o.now().Sub(summary.StartedAt)
	summary.Success = runErr == nil
	summary.Message = fmt.Sprintf("processed %d items from %d feeds: %d inserted, %d duplicates, %d skipped, %d errors",
		counters.processed, len(selected), counters.inserted, counters.duplicates, counters.skipped, counters.errors)

	result := "success"
	if runErr != nil {
		result = "cancelled"
		summary.Message = "batch interrupted, " + summary.Message
	}
	o.metrics.batch(result, summary.Duration, o.now())
	lgr.Printf("[INFO] batch %s finished in %v, %s", summary.RunID, summary.Duration.Round(time.Millisecond), summary.Message)

	if runErr != nil {
		return summary, fmt.Errorf("run batch %s: %w", summary.RunID, runErr)
	}
	return summary, nil
}

// sample returns a shuffled copy of feeds, at most size long. Non-positive size takes all.
func (o *Orchestrator) sample(feeds []domain.Feed, size int) []domain.Feed {
	res := make([]domain.Feed, len(feeds))
	copy(res, feeds)
	o.shuffle(len(res), func(i, j int) { res[i], res[j] = res[j], res[i] })
	if size > 0 && len(res) > size {
		res = res[:size]
	}
	return res
}

// processItem runs one item through the pipeline and reports what happened to it
func (o *Orchestrator) processItem(ctx context.Context, item domain.FeedItem, limiter *rate.Limiter) outcome {
	if strings.TrimSpace(item.Link) == "" {
		lgr.Printf("[WARN] item %q from %s has no link, skipped", item.Title, item.FeedName)
		return outcomeFailed
	}
	key := dedup.Key(o.dedupMode, item.Link)

	exists, err := o.store.Exists(ctx, key)
	switch {
	case err != nil:
		// the unique index catches the duplicate at write time
		lgr.Printf("[WARN] can't check duplicate for %s, assuming new: %v", item.Link, err)
	case exists:
		lgr.Printf("[DEBUG] duplicate %s", item.Link)
		return outcomeDuplicate
	}

	if o.dropped.Seen(key) {
		lgr.Printf("[DEBUG] %s was rejected recently, skipped", item.Link)
		return outcomeSkipped
	}

	// a record without a date is dropped anyway, don't pay for extraction
	if _, err := PublishedAt(item); err != nil {
		o.dropped.Mark(key)
		lgr.Printf("[WARN] %s has no usable publish date, skipped: %v", item.Link, err)
		return outcomeFailed
	}

	ev, err := o.extract(ctx, item, limiter)
	if err != nil {
		lgr.Printf("[WARN] extraction failed for %s: %v", item.Link, err)
		return outcomeFailed
	}
	if ev == nil {
		o.dropped.Mark(key)
		lgr.Printf("[DEBUG] not relevant: %s", item.Title)
		return outcomeSkipped
	}

	rec, err := Normalize(item, *ev, o.dedupMode)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			o.dropped.Mark(key)
		}
		lgr.Printf("[WARN] can't normalize %s: %v", item.Link, err)
		return outcomeFailed
	}

	if err := o.store.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			lgr.Printf("[DEBUG] duplicate on write %s", item.Link)
			return outcomeDuplicate
		}
		lgr.Printf("[WARN] can't store %s: %v", item.Link, err)
		return outcomeFailed
	}
	lgr.Printf("[INFO] stored conflict %d: %s (%s, %s, severity %d)", rec.ID, rec.Title, rec.LocationName, rec.Category, rec.Severity)

	for _, n := range o.notifiers {
		if err := n.Notify(ctx, *rec); err != nil {
			lgr.Printf("[WARN] notification for conflict %d failed: %v", rec.ID, err)
		}
	}
	return outcomeInserted
}

// extract calls the primary strategy, falling back on its error
func (o *Orchestrator) extract(ctx context.Context, item domain.FeedItem, limiter *rate.Limiter) (*domain.ExtractedEvent, error) {
	if o.primary != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for extraction slot: %w", err)
		}
		ev, err := o.primary.Extract(ctx, item)
		if err == nil {
			o.metrics.extract("primary", resultOf(ev))
			return ev, nil
		}
		o.metrics.extract("primary", "error")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("primary extraction: %w", err)
		}
		lgr.Printf("[WARN] primary extraction failed for %s, using fallback: %v", item.Link, err)
	}

	if o.fallback == nil {
		return nil, errors.New("no fallback extractor")
	}
	ev, err := o.fallback.Extract(ctx, item)
	if err != nil {
		o.metrics.extract("fallback", "error")
		return nil, fmt.Errorf("fallback extraction: %w", err)
	}
	o.metrics.extract("fallback", resultOf(ev))
	return ev, nil
}

func resultOf(ev *domain.ExtractedEvent) string {
	if ev == nil {
		return "irrelevant"
	}
	return "event"
}
