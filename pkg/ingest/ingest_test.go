package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappin-app/mappin/pkg/dedup"
	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/ingest/mocks"
	"github.com/mappin-app/mappin/pkg/repository"
)

var published = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func item(link, title string) domain.FeedItem {
	return domain.FeedItem{FeedName: "test", Title: title, Link: link, Description: title, Published: &published}
}

func event() *domain.ExtractedEvent {
	return &domain.ExtractedEvent{Latitude: 15.5, Longitude: 32.56, LocationName: "Khartoum, Sudan",
		Category: domain.CategoryArmedConflict, Severity: 3, Summary: "summary"}
}

// memStore is an in-memory Store keyed by url key
type memStore struct {
	mu   sync.Mutex
	recs map[string]domain.Conflict
	next int64
}

func newMemStore() *memStore { return &memStore{recs: map[string]domain.Conflict{}} }

func (m *memStore) Exists(_ context.Context, urlKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.recs[urlKey]
	return ok, nil
}

func (m *memStore) Create(_ context.Context, c *domain.Conflict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[c.URLKey]; ok {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, c.URLKey)
	}
	m.next++
	c.ID = m.next
	m.recs[c.URLKey] = *c
	return nil
}

func readerOf(feeds map[string][]domain.FeedItem) *mocks.FeedReaderMock {
	return &mocks.FeedReaderMock{FetchFeedFunc: func(_ context.Context, f domain.Feed) []domain.FeedItem {
		return feeds[f.URL]
	}}
}

func noShuffle(int, func(i, j int)) {}

func TestOrchestrator_RunBatch(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{
		"http://feed1": {
			item("http://ex.com/a", "Clashes reported in Khartoum"),
			item("http://ex.com/b", "Local bakery wins award"),
		},
		"http://feed2": {item("http://ex.com/c", "Protests in Lebanon")},
	})
	primary := &mocks.ExtractorMock{ExtractFunc: func(_ context.Context, it domain.FeedItem) (*domain.ExtractedEvent, error) {
		if it.Link == "http://ex.com/b" {
			return nil, nil
		}
		return event(), nil
	}}
	notifier := &mocks.NotifierMock{NotifyFunc: func(context.Context, domain.Conflict) error { return nil }}
	store := newMemStore()

	reg := prometheus.NewRegistry()
	o := NewOrchestrator(Params{Reader: reader, Primary: primary, Store: store,
		Notifiers: []Notifier{notifier}, DroppedTTL: time.Hour, Metrics: NewMetrics(reg)})
	o.shuffle = noShuffle

	feeds := []domain.Feed{{URL: "http://feed1", Name: "f1"}, {URL: "http://feed2", Name: "f2"}}
	summary, err := o.RunBatch(context.Background(), feeds, domain.BatchOptions{})
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Feeds)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)
	assert.Contains(t, summary.Message, "2 inserted")

	require.Len(t, notifier.NotifyCalls(), 2)
	assert.Equal(t, "http://ex.com/a", notifier.NotifyCalls()[0].C.SourceURL)
	assert.Equal(t, int64(1), notifier.NotifyCalls()[0].C.ID)

	assert.InDelta(t, 2, testutil.ToFloat64(o.metrics.items.WithLabelValues("inserted")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.items.WithLabelValues("skipped")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.batches.WithLabelValues("success")), 0.001)

	t.Run("second run is idempotent", func(t *testing.T) {
		calls := len(primary.ExtractCalls())
		summary, err := o.RunBatch(context.Background(), feeds, domain.BatchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Inserted)
		assert.Equal(t, 2, summary.Duplicates)
		assert.Equal(t, 1, summary.Skipped) // rejected link remembered
		assert.Len(t, primary.ExtractCalls(), calls)
		assert.Len(t, store.recs, 2)
	})
}

func TestOrchestrator_DuplicateGate(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/a?utm_source=x", "t")}})
	primary := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return event(), nil
	}}
	store := &mocks.StoreMock{
		ExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
		CreateFunc: func(context.Context, *domain.Conflict) error { return nil },
	}
	o := NewOrchestrator(Params{Reader: reader, Primary: primary, Store: store})

	summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Empty(t, primary.ExtractCalls())
	assert.Empty(t, store.CreateCalls())
	require.Len(t, store.ExistsCalls(), 1)
	assert.Equal(t, "http://ex.com/a", store.ExistsCalls()[0].UrlKey) // normalized key by default
}

func TestOrchestrator_ExactDedupMode(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/a?utm_source=x", "t")}})
	store := &mocks.StoreMock{
		ExistsFunc: func(context.Context, string) (bool, error) { return false, nil },
		CreateFunc: func(context.Context, *domain.Conflict) error { return nil },
	}
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return event(), nil
	}}
	o := NewOrchestrator(Params{Reader: reader, Fallback: fallback, Store: store, DedupMode: dedup.ModeExact})

	_, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://ex.com/a?utm_source=x", store.ExistsCalls()[0].UrlKey)
	require.Len(t, store.CreateCalls(), 1)
	assert.Equal(t, "http://ex.com/a?utm_source=x", store.CreateCalls()[0].C.URLKey)
}

func TestOrchestrator_Fallback(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/a", "t")}})
	primary := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return nil, errors.New("llm rate limited")
	}}
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		ev := event()
		ev.Category = domain.CategoryProtest
		return ev, nil
	}}
	store := newMemStore()
	o := NewOrchestrator(Params{Reader: reader, Primary: primary, Fallback: fallback, Store: store, Metrics: NewMetrics(nil)})

	summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Len(t, primary.ExtractCalls(), 1)
	assert.Len(t, fallback.ExtractCalls(), 1)
	assert.Equal(t, domain.CategoryProtest, store.recs["http://ex.com/a"].Category)
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.extraction.WithLabelValues("primary", "error")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(o.metrics.extraction.WithLabelValues("fallback", "event")), 0.001)

	t.Run("both fail", func(t *testing.T) {
		fallback.ExtractFunc = func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
			return nil, errors.New("boom")
		}
		reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/new", "t")}})
		o := NewOrchestrator(Params{Reader: reader, Primary: primary, Fallback: fallback, Store: newMemStore()})
		summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
		require.NoError(t, err)
		assert.True(t, summary.Success)
		assert.Equal(t, 1, summary.Errors)
	})

	t.Run("no fallback", func(t *testing.T) {
		reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/new", "t")}})
		o := NewOrchestrator(Params{Reader: reader, Primary: primary, Store: newMemStore()})
		summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Errors)
	})
}

func TestOrchestrator_ItemErrors(t *testing.T) {
	noDate := domain.FeedItem{Title: "t", Link: "http://ex.com/nodate", PubDate: "sometime last week"}
	rawDate := domain.FeedItem{Title: "t", Link: "http://ex.com/raw", PubDate: "2025-01-01"}
	noLink := domain.FeedItem{Title: "t", Published: &published}
	dup := item("http://ex.com/dup", "t")
	failing := item("http://ex.com/fail", "t")

	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {noDate, rawDate, noLink, dup, failing}})
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return event(), nil
	}}
	var created []string
	store := &mocks.StoreMock{
		ExistsFunc: func(_ context.Context, key string) (bool, error) {
			if key == "http://ex.com/raw" {
				return false, errors.New("db is down")
			}
			return false, nil
		},
		CreateFunc: func(_ context.Context, c *domain.Conflict) error {
			switch c.SourceURL {
			case "http://ex.com/dup":
				return fmt.Errorf("%w: %s", repository.ErrDuplicate, c.URLKey)
			case "http://ex.com/fail":
				return errors.New("disk full")
			}
			created = append(created, c.SourceURL)
			assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.PublishedAt)
			return nil
		},
	}
	o := NewOrchestrator(Params{Reader: reader, Fallback: fallback, Store: store, DroppedTTL: time.Hour})

	summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://ex.com/raw"}, created) // lookup error assumes not duplicate
	assert.Equal(t, 5, summary.Processed)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 3, summary.Errors) // no date, no link, failed write
	assert.True(t, o.dropped.Seen("http://ex.com/nodate"))

	// the undated item never reaches extraction
	require.Len(t, fallback.ExtractCalls(), 3)
	for _, c := range fallback.ExtractCalls() {
		assert.NotEqual(t, "http://ex.com/nodate", c.Item.Link)
	}
}

func TestOrchestrator_Limits(t *testing.T) {
	feeds := make([]domain.Feed, 0, 5)
	items := map[string][]domain.FeedItem{}
	for i := range 5 {
		u := fmt.Sprintf("http://feed%d", i)
		feeds = append(feeds, domain.Feed{URL: u})
		for j := range 4 {
			items[u] = append(items[u], item(fmt.Sprintf("http://ex.com/%d/%d", i, j), "t"))
		}
	}
	reader := readerOf(items)
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return nil, nil
	}}
	o := NewOrchestrator(Params{Reader: reader, Fallback: fallback, Store: newMemStore()})

	summary, err := o.RunBatch(context.Background(), feeds, domain.BatchOptions{BatchSize: 2, MaxItemsPerFeed: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Feeds)
	assert.Len(t, reader.FetchFeedCalls(), 2)
	assert.Equal(t, 6, summary.Processed)
	assert.Equal(t, 6, summary.Skipped)
	assert.Len(t, feeds, 5, "input feeds are not modified")
}

func TestOrchestrator_InterItemDelay(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/1", "t"), item("http://ex.com/2", "t"),
		item("http://ex.com/3", "t")}})
	primary := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return nil, nil
	}}
	o := NewOrchestrator(Params{Reader: reader, Primary: primary, Store: newMemStore()})

	st := time.Now()
	_, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{InterItemDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(st), 90*time.Millisecond, "three calls are spaced by two delays")
	assert.Len(t, primary.ExtractCalls(), 3)
}

func TestOrchestrator_InProgress(t *testing.T) {
	started, release := make(chan struct{}), make(chan struct{})
	reader := &mocks.FeedReaderMock{FetchFeedFunc: func(context.Context, domain.Feed) []domain.FeedItem {
		close(started)
		<-release
		return nil
	}}
	o := NewOrchestrator(Params{Reader: reader, Store: newMemStore()})

	done := make(chan error, 1)
	go func() {
		_, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
		done <- err
	}()
	<-started

	summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.ErrorIs(t, err, ErrBatchInProgress)
	assert.False(t, summary.Success)

	close(release)
	require.NoError(t, <-done)
}

func TestOrchestrator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/1", "t"), item("http://ex.com/2", "t")}})
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		cancel()
		return nil, nil
	}}
	o := NewOrchestrator(Params{Reader: reader, Fallback: fallback, Store: newMemStore()})

	summary, err := o.RunBatch(ctx, []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, summary.Success)
	assert.Equal(t, 1, summary.Processed)
	assert.Contains(t, summary.Message, "interrupted")
}

func TestOrchestrator_NotifierErrorIgnored(t *testing.T) {
	reader := readerOf(map[string][]domain.FeedItem{"http://feed": {item("http://ex.com/1", "t")}})
	fallback := &mocks.ExtractorMock{ExtractFunc: func(context.Context, domain.FeedItem) (*domain.ExtractedEvent, error) {
		return event(), nil
	}}
	bad := &mocks.NotifierMock{NotifyFunc: func(context.Context, domain.Conflict) error { return errors.New("broker down") }}
	good := &mocks.NotifierMock{NotifyFunc: func(context.Context, domain.Conflict) error { return nil }}
	o := NewOrchestrator(Params{Reader: reader, Fallback: fallback, Store: newMemStore(), Notifiers: []Notifier{bad, good}})

	summary, err := o.RunBatch(context.Background(), []domain.Feed{{URL: "http://feed"}}, domain.BatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Len(t, bad.NotifyCalls(), 1)
	assert.Len(t, good.NotifyCalls(), 1)
}
