// Package flight holds the in-memory bookkeeping for single-flight user
// resolution: a registry of in-flight ids and a bounded FIFO work queue.
// Both are volatile; queued work does not survive a restart.
package flight
