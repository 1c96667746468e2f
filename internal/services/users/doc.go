// Package usersvc implements read-through resolution of user records on
// top of the internal store. Lookups that miss the cache are fetched from
// the upstream directory exactly once, persisted, and then served from
// the cache forever after.
//
// # Resolution Flow
//
//  1. Resolve → store lookup → hit returns immediately
//  2. [miss] First caller claims the id and enqueues it
//  3. Worker → fetch upstream → persist (insert-if-absent) → release claim
//  4. All callers poll the store until the record lands or the window ends
//
// # Single Flight
//
//   - Claim registry: at most one outstanding fetch per id
//   - Bounded FIFO queue: Enqueue blocks when full (backpressure)
//   - Failed fetches requeue after a delay with the claim kept, so
//     concurrent callers never schedule a duplicate
//   - A miss after the polling window is not an error; the next Resolve
//     tries again
//
// Example:
//
//	svc := usersvc.New(rt, upstreamClient)
//	_ = svc.Start(ctx)
//	defer svc.Stop()
//	rec, ok, err := svc.Resolve(ctx, 42)
//	_ = rec
//	_ = ok
//	_ = err
package usersvc
