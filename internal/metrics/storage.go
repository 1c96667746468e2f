package metrics

import (
	"time"
)

var (
	storageReadSeconds = MustRegisterHistogram(
		"storage", "read_seconds",
		"Latency of point reads against the record store.",
		DurationBuckets,
	)
	storageWriteSeconds = MustRegisterHistogram(
		"storage", "write_seconds",
		"Latency of point writes against the record store.",
		DurationBuckets,
	)
	storageCommitSeconds = MustRegisterHistogram(
		"storage", "batch_commit_seconds",
		"Latency of batch commits against the record store.",
		DurationBuckets,
	)
	storageReadBytes = MustRegisterCounter(
		"storage", "read_bytes_total",
		"Total bytes returned by point reads.",
	)
	storageWriteBytes = MustRegisterCounter(
		"storage", "write_bytes_total",
		"Total bytes written by point writes.",
	)
	storageCommitBytes = MustRegisterCounter(
		"storage", "batch_commit_bytes_total",
		"Total bytes committed in batches.",
	)
)

// StorageMetrics adapts the prometheus registry to the storage layer's
// MetricsHook surface.
type StorageMetrics struct{}

// NewStorageMetrics returns the storage metrics hook.
func NewStorageMetrics() StorageMetrics { return StorageMetrics{} }

// ObserveWrite records a point write.
func (StorageMetrics) ObserveWrite(elapsed time.Duration, bytes int) {
	storageWriteSeconds.Observe(elapsed.Seconds())
	storageWriteBytes.Add(float64(bytes))
}

// ObserveRead records a point read.
func (StorageMetrics) ObserveRead(elapsed time.Duration, bytes int) {
	storageReadSeconds.Observe(elapsed.Seconds())
	storageReadBytes.Add(float64(bytes))
}

// ObserveBatchCommit records a batch commit.
func (StorageMetrics) ObserveBatchCommit(elapsed time.Duration, numOps int, bytes int) {
	storageCommitSeconds.Observe(elapsed.Seconds())
	storageCommitBytes.Add(float64(bytes))
}
