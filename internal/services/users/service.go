package usersvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rzbill/rolo/internal/flight"
	"github.com/rzbill/rolo/internal/runtime"
	"github.com/rzbill/rolo/internal/store"
	"github.com/rzbill/rolo/pkg/id"
	logpkg "github.com/rzbill/rolo/pkg/log"
)

// Fetcher retrieves a user profile from the upstream directory.
// ok=false with a nil error means the upstream has no such user; a
// non-nil error means the attempt failed and may be retried.
type Fetcher interface {
	Fetch(ctx context.Context, id int64) (store.Record, bool, error)
}

const (
	defaultPollAttempts    = 10
	defaultPollInterval    = time.Second
	defaultRequeueDelay    = 5 * time.Second
	defaultPersistAttempts = 3
	defaultPersistDelay    = time.Second
	defaultMaxBatch        = 100
	defaultListLimit       = 100
)

// Service coordinates cache-aside resolution of user records: a fast
// store lookup, a single-flight claim per id, and a background worker
// that fetches and persists.
type Service struct {
	rt      *runtime.Runtime
	logger  logpkg.Logger
	fetcher Fetcher

	registry *flight.Registry
	queue    *flight.Queue
	ids      *id.Generator

	pollAttempts    int
	pollInterval    time.Duration
	requeueDelay    time.Duration
	persistAttempts int
	persistDelay    time.Duration
	maxBatch        int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New constructs the user resolution service facade.
func New(rt *runtime.Runtime, fetcher Fetcher) *Service { return NewWithLogger(rt, fetcher, nil) }

// NewWithLogger constructs the service with a parent logger.
func NewWithLogger(rt *runtime.Runtime, fetcher Fetcher, logger logpkg.Logger) *Service {
	if logger == nil {
		base := logpkg.NewLogger()
		logger = base.With(logpkg.F("component", "users"))
	} else {
		logger = logger.With(logpkg.F("component", "users"))
	}
	s := &Service{
		rt:              rt,
		logger:          logger,
		fetcher:         fetcher,
		registry:        flight.NewRegistry(),
		ids:             id.NewGenerator(),
		pollAttempts:    defaultPollAttempts,
		pollInterval:    defaultPollInterval,
		requeueDelay:    defaultRequeueDelay,
		persistAttempts: defaultPersistAttempts,
		persistDelay:    defaultPersistDelay,
		maxBatch:        defaultMaxBatch,
	}
	queueCap := flight.DefaultQueueCapacity
	// Apply config overrides if present.
	if rt != nil {
		cfg := rt.Config().Resolver
		if cfg.QueueCapacity > 0 {
			queueCap = cfg.QueueCapacity
		}
		if cfg.PollAttempts > 0 {
			s.pollAttempts = cfg.PollAttempts
		}
		if cfg.PollIntervalMs > 0 {
			s.pollInterval = cfg.PollInterval()
		}
		if cfg.RequeueDelayMs > 0 {
			s.requeueDelay = cfg.RequeueDelay()
		}
		if cfg.PersistAttempts > 0 {
			s.persistAttempts = cfg.PersistAttempts
		}
		if cfg.PersistDelayMs > 0 {
			s.persistDelay = cfg.PersistDelay()
		}
		if cfg.MaxBatch > 0 {
			s.maxBatch = cfg.MaxBatch
		}
	}
	s.queue = flight.NewQueue(queueCap)
	return s
}

// Start launches the background fetch worker. Calling Start on a running
// service is an error.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("users: service already started")
	}
	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go func() {
		defer close(done)
		s.runWorker(wctx)
	}()
	s.logger.Info("resolver worker started")
	return nil
}

// Stop cancels the worker and waits for it to exit. Stop on a stopped
// service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("resolver worker stopped")
}

// Resolve returns the record for uid. On a cache miss the first caller
// claims the id and enqueues it for the worker; every caller then polls
// the store until the record lands. ok=false with a nil error means the
// id could not be resolved within the polling window.
func (s *Service) Resolve(ctx context.Context, uid int64) (store.Record, bool, error) {
	if uid <= 0 {
		return store.Record{}, false, fmt.Errorf("resolve: id must be positive, got %d", uid)
	}
	start := time.Now()
	done := func(outcome string, rec store.Record, ok bool, err error) (store.Record, bool, error) {
		resolvesTotal.WithLabelValues(outcome).Inc()
		resolveSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		return rec, ok, err
	}

	if rec, ok, err := s.rt.Store().Get(ctx, uid); err != nil {
		return done("error", store.Record{}, false, err)
	} else if ok {
		return done("hit", rec, true, nil)
	}

	// First claimant schedules the fetch; everyone else just waits on
	// the store.
	if s.registry.Claim(uid) {
		inFlightGauge.Set(float64(s.registry.Len()))
		if err := s.queue.Enqueue(ctx, uid); err != nil {
			// Nothing was queued, so keeping the claim would leave the
			// id permanently unserviced.
			s.registry.Release(uid)
			inFlightGauge.Set(float64(s.registry.Len()))
			return done("error", store.Record{}, false, fmt.Errorf("enqueue %d: %w", uid, err))
		}
		queueSizeGauge.Set(float64(s.queue.Len()))
		s.logger.Debug("scheduled fetch", logpkg.F("userId", uid))
	} else {
		claimConflictsTotal.Inc()
	}

	rec, ok, err := s.waitForRecord(ctx, uid)
	switch {
	case err != nil:
		return done("error", store.Record{}, false, err)
	case ok:
		return done("resolved", rec, true, nil)
	default:
		return done("miss", store.Record{}, false, nil)
	}
}

// waitForRecord polls the store with a lookup before every sleep, so a
// record that is already present returns without waiting.
func (s *Service) waitForRecord(ctx context.Context, uid int64) (store.Record, bool, error) {
	for attempt := 0; attempt < s.pollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return store.Record{}, false, ctx.Err()
			case <-time.After(s.pollInterval):
			}
		}
		rec, ok, err := s.rt.Store().Get(ctx, uid)
		if err != nil {
			return store.Record{}, false, err
		}
		if ok {
			return rec, true, nil
		}
	}
	return store.Record{}, false, nil
}

// ResolveMany resolves a batch of ids concurrently. A failed or missing
// id never fails the batch; the result simply omits it. Found records
// keep the input order.
func (s *Service) ResolveMany(ctx context.Context, uids []int64) ([]store.Record, error) {
	if len(uids) == 0 {
		return nil, fmt.Errorf("resolve batch: no ids")
	}
	if len(uids) > s.maxBatch {
		return nil, fmt.Errorf("resolve batch: %d ids exceeds limit %d", len(uids), s.maxBatch)
	}
	logger := s.logger.With(logpkg.F("batchId", s.ids.Next().Short()))
	results := make([]*store.Record, len(uids))
	g, gctx := errgroup.WithContext(ctx)
	for i, uid := range uids {
		g.Go(func() error {
			rec, ok, err := s.Resolve(gctx, uid)
			if err != nil {
				logger.Warn("resolve failed", logpkg.F("userId", uid), logpkg.Err(err))
				return nil
			}
			if !ok {
				logger.Debug("resolve missed", logpkg.F("userId", uid))
				return nil
			}
			results[i] = &rec
			return nil
		})
	}
	_ = g.Wait()
	out := make([]store.Record, 0, len(uids))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// Lookup returns the cached record without scheduling a fetch.
func (s *Service) Lookup(ctx context.Context, uid int64) (store.Record, bool, error) {
	if uid <= 0 {
		return store.Record{}, false, fmt.Errorf("lookup: id must be positive, got %d", uid)
	}
	return s.rt.Store().Get(ctx, uid)
}

// List returns cached records in id order, optionally filtered by a CEL
// expression over id, display_name, region, and created_ms.
func (s *Service) List(ctx context.Context, req ListRequest) ([]store.Record, error) {
	f, err := newListFilter(req.Filter)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.rt.Store().List(ctx, store.ListOptions{Limit: limit, Filter: f.Eval})
}

// Stats reports cache totals, per-region counts, and resolution activity.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.rt.Store().Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	regions, err := s.rt.Store().RegionCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalUsersCached: total,
		Regions:          regions,
		QueueSize:        s.queue.Len(),
		InFlight:         s.registry.Len(),
		InFlightIDs:      s.registry.Snapshot(),
	}, nil
}

// QueueInfo reports fetch queue occupancy and outstanding claims.
func (s *Service) QueueInfo() QueueInfo {
	size := s.queue.Len()
	capacity := s.queue.Cap()
	return QueueInfo{
		QueueSize:      size,
		QueueCapacity:  capacity,
		QueueAvailable: capacity - size,
		InFlight:       s.registry.Len(),
		InFlightIDs:    s.registry.Snapshot(),
	}
}
