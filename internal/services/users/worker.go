package usersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rzbill/rolo/internal/store"
	logpkg "github.com/rzbill/rolo/pkg/log"
)

const workerRestartDelay = time.Second

// runWorker drains the fetch queue until ctx is canceled. A failure in a
// single pass is logged and the loop resumes after a short pause.
func (s *Service) runWorker(ctx context.Context) {
	for {
		err := s.workOnce(ctx)
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Debug("worker exiting", logpkg.Err(err))
			return
		}
		s.logger.Error("worker pass failed", logpkg.Err(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(workerRestartDelay):
		}
	}
}

// workOnce waits for the next queued id and runs it to completion. A
// panicking fetcher surfaces as an error so the loop survives it; the
// claim stays held and the next Resolve for that id keeps deduplicating.
func (s *Service) workOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker pass panicked: %v", r)
		}
	}()
	uid, err := s.queue.Dequeue(ctx)
	if err != nil {
		return err
	}
	queueSizeGauge.Set(float64(s.queue.Len()))
	return s.handle(ctx, uid)
}

// handle fetches uid from the upstream and persists the result. Fetch
// failures and upstream misses are requeued with the claim kept, so
// concurrent resolvers keep deduplicating against the original claim.
// Once a fetch succeeds the claim is released no matter how persistence
// goes.
func (s *Service) handle(ctx context.Context, uid int64) error {
	rec, ok, err := s.fetcher.Fetch(ctx, uid)
	if err != nil || !ok {
		if err != nil {
			fetchesTotal.WithLabelValues("error").Inc()
			s.logger.Warn("fetch failed", logpkg.F("userId", uid), logpkg.Err(err))
		} else {
			fetchesTotal.WithLabelValues("miss").Inc()
			s.logger.Debug("user not found upstream", logpkg.F("userId", uid))
		}
		return s.requeue(ctx, uid)
	}
	fetchesTotal.WithLabelValues("ok").Inc()

	defer func() {
		s.registry.Release(uid)
		inFlightGauge.Set(float64(s.registry.Len()))
	}()
	return s.persist(ctx, rec)
}

// requeue puts uid back on the queue after a delay, keeping the claim so
// no duplicate fetch gets scheduled in the meantime.
func (s *Service) requeue(ctx context.Context, uid int64) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.requeueDelay):
	}
	if err := s.queue.Enqueue(ctx, uid); err != nil {
		return err
	}
	queueSizeGauge.Set(float64(s.queue.Len()))
	requeuesTotal.Inc()
	s.logger.Debug("requeued", logpkg.F("userId", uid))
	return nil
}

// persist stores rec with a bounded number of attempts. A record already
// present counts as success. Exhausting the attempts is terminal for this
// fetch; the id can be resolved again later.
func (s *Service) persist(ctx context.Context, rec store.Record) error {
	var lastErr error
	for attempt := 1; attempt <= s.persistAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.persistDelay):
			}
		}
		inserted, err := s.rt.Store().InsertIfAbsent(ctx, rec)
		if err == nil {
			if inserted {
				persistsTotal.WithLabelValues("inserted").Inc()
				s.logger.Info("user cached", logpkg.F("userId", rec.ID), logpkg.F("region", rec.Region))
			} else {
				persistsTotal.WithLabelValues("duplicate").Inc()
				s.logger.Debug("user already cached", logpkg.F("userId", rec.ID))
			}
			return nil
		}
		lastErr = err
		persistsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("persist attempt failed", logpkg.F("userId", rec.ID), logpkg.F("attempt", attempt), logpkg.Err(err))
	}
	s.logger.Error("persist gave up", logpkg.F("userId", rec.ID), logpkg.F("attempts", s.persistAttempts), logpkg.Err(lastErr))
	return nil
}
