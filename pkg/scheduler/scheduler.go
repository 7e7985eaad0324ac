// Package scheduler runs ingestion batches on a timer and on demand, guarding
// on-demand runs with a cooldown persisted in settings.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/ingest"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// ErrCooldown is returned by Trigger when the previous batch is too recent
var ErrCooldown = errors.New("batch cooldown active")

// Runner runs one ingestion batch
type Runner interface {
	RunBatch(ctx context.Context, feeds []domain.Feed, opts domain.BatchOptions) (domain.BatchSummary, error)
}

// SettingStore keeps scheduler state between restarts and across instances
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Params holds scheduler dependencies and timings
type Params struct {
	Runner   Runner
	Settings SettingStore
	Feeds    []domain.Feed
	Options  domain.BatchOptions
	Interval time.Duration // zero disables the timer
	Cooldown time.Duration // minimal spacing of triggered batches
}

// Scheduler runs batches periodically and on demand
type Scheduler struct {
	runner   Runner
	settings SettingStore
	feeds    []domain.Feed
	opts     domain.BatchOptions
	interval time.Duration
	cooldown time.Duration
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu      sync.Mutex // guards last and trigger check-and-set
	last    domain.BatchSummary
	hasLast bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	return &Scheduler{
		runner:   p.Runner,
		settings: p.Settings,
		feeds:    p.Feeds,
		opts:     p.Options,
		interval: p.Interval,
		cooldown: p.Cooldown,
		now:      time.Now,
	}
}

// Start runs the timer loop in background, Stop waits for it to finish
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// Run blocks running a batch every interval until ctx is done. The first batch
// starts after one interval, not immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		lgr.Printf("[INFO] scheduled batches disabled")
		<-ctx.Done()
		return
	}
	lgr.Printf("[INFO] scheduler started with interval %v, %d feeds", s.interval, len(s.feeds))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunNow(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lgr.Printf("[WARN] scheduled batch: %v", err)
			}
		}
	}
}

// RunNow runs a batch right away, ignoring the cooldown
func (s *Scheduler) RunNow(ctx context.Context) (domain.BatchSummary, error) {
	s.mu.Lock()
	prev, err := s.lastBatchAt(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't read last batch time: %v", err)
	}
	s.markStarted(ctx)
	s.mu.Unlock()
	return s.runMarked(ctx, prev, err == nil)
}

// Trigger runs a batch unless the previous one started within the cooldown.
// Within the cooldown it returns an unsuccessful summary and ErrCooldown.
func (s *Scheduler) Trigger(ctx context.Context) (domain.BatchSummary, error) {
	s.mu.Lock()
	lastAt, err := s.lastBatchAt(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't read last batch time, proceeding: %v", err)
	}
	now := s.now().UTC()
	if elapsed := now.Sub(lastAt); !lastAt.IsZero() && elapsed < s.cooldown {
		s.mu.Unlock()
		wait := (s.cooldown - elapsed).Round(time.Second)
		summary := domain.BatchSummary{
			StartedAt: now,
			Message:   fmt.Sprintf("last batch started %v ago, next one allowed in %v", elapsed.Round(time.Second), wait),
		}
		return summary, ErrCooldown
	}
	s.markStarted(ctx)
	s.mu.Unlock()

	return s.runMarked(ctx, lastAt, err == nil)
}

// Last returns the summary of the latest finished batch
func (s *Scheduler) Last() (domain.BatchSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// runMarked runs a batch after its start was recorded. A batch rejected because
// another one is running gives the previous start time back.
func (s *Scheduler) runMarked(ctx context.Context, prev time.Time, restorable bool) (domain.BatchSummary, error) {
	summary, err := s.run(ctx)
	if errors.Is(err, ingest.ErrBatchInProgress) && restorable {
		s.restoreStarted(ctx, prev)
	}
	return summary, err
}

func (s *Scheduler) run(ctx context.Context) (domain.BatchSummary, error) {
	summary, err := s.runner.RunBatch(ctx, s.feeds, s.opts)
	if err != nil {
		return summary, fmt.Errorf("batch: %w", err)
	}
	s.mu.Lock()
	s.last, s.hasLast = summary, true
	s.mu.Unlock()
	return summary, nil
}

func (s *Scheduler) lastBatchAt(ctx context.Context) (time.Time, error) {
	if s.settings == nil {
		return time.Time{}, nil
	}
	v, err := s.settings.GetSetting(ctx, domain.SettingLastBatchAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("get %s: %w", domain.SettingLastBatchAt, err)
	}
	if v == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", domain.SettingLastBatchAt, v, err)
	}
	return ts, nil
}

func (s *Scheduler) markStarted(ctx context.Context) {
	if s.settings == nil {
		return
	}
	if err := s.settings.SetSetting(ctx, domain.SettingLastBatchAt, s.now().UTC().Format(time.RFC3339)); err != nil {
		lgr.Printf("[WARN] can't store last batch time: %v", err)
	}
}

func (s *Scheduler) restoreStarted(ctx context.Context, prev time.Time) {
	if s.settings == nil {
		return
	}
	v := ""
	if !prev.IsZero() {
		v = prev.UTC().Format(time.RFC3339)
	}
	if err := s.settings.SetSetting(ctx, domain.SettingLastBatchAt, v); err != nil {
		lgr.Printf("[WARN] can't restore last batch time: %v", err)
	}
}
