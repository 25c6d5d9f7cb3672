package livevalues

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/livecanvas/dashboard-backend/internal/livevalues/domain"
)

// Source yields the full current set of live values.
type Source interface {
	List(ctx context.Context) ([]domain.LiveValue, error)
}

type Options struct {
	Interval     time.Duration
	FetchTimeout time.Duration
	Logger       zerolog.Logger
	// OnRefresh, if set, is called after every poll with its outcome.
	OnRefresh func(err error, took time.Duration)
}

// Resolver polls a Source on a fixed interval and keeps the last
// successfully fetched code → value map.
type Resolver struct {
	src  Source
	opts Options

	mu        sync.RWMutex
	values    map[string]string
	refreshed time.Time

	lifecycle sync.Mutex
	cron      *cron.Cron
	cancel    context.CancelFunc
}

func NewResolver(src Source, opts Options) *Resolver {
	if opts.Interval < time.Second {
		opts.Interval = 2 * time.Second
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = opts.Interval
	}
	return &Resolver{
		src:    src,
		opts:   opts,
		values: map[string]string{},
	}
}

// Refresh fetches the full mapping and swaps it in. On failure the previous
// mapping stays in place.
func (r *Resolver) Refresh(ctx context.Context) error {
	start := time.Now()
	fctx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	values, err := r.src.List(fctx)
	if err == nil {
		next := domain.Snapshot(values)
		r.mu.Lock()
		r.values = next
		r.refreshed = time.Now()
		r.mu.Unlock()
	} else {
		err = fmt.Errorf("refresh live values: %w", err)
	}

	if r.opts.OnRefresh != nil {
		r.opts.OnRefresh(err, time.Since(start))
	}
	return err
}

// Start runs one refresh immediately and then schedules the rest. A tick
// that is still running when the next one fires is skipped.
func (r *Resolver) Start(ctx context.Context) {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	if r.cron != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	logger := cronLogger{l: r.opts.Logger}

	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(cron.Every(r.opts.Interval), cron.FuncJob(func() {
		r.tick(runCtx)
	}))

	r.tick(runCtx)
	c.Start()

	r.cron = c
	r.cancel = cancel
	r.opts.Logger.Info().Dur("interval", r.opts.Interval).Msg("live value resolver started")
}

// Stop cancels any in-flight fetch and waits for a running tick to return.
// It is safe to call more than once.
func (r *Resolver) Stop() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()
	if r.cron == nil {
		return
	}

	r.cancel()
	<-r.cron.Stop().Done()
	r.cron = nil
	r.cancel = nil
	r.opts.Logger.Info().Msg("live value resolver stopped")
}

func (r *Resolver) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.Refresh(ctx); err != nil {
		r.opts.Logger.Warn().Err(err).Msg("keeping last known live values")
	}
}

// Snapshot returns a copy of the current mapping.
func (r *Resolver) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.values)
}

// RefreshedAt reports when the mapping was last replaced.
func (r *Resolver) RefreshedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshed
}

// Lookup implements the lookup used by DisplayValue.
func (r *Resolver) Lookup(code string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[code]
	return v, ok
}

// cronLogger routes cron's internal logging to zerolog.
type cronLogger struct {
	l zerolog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
