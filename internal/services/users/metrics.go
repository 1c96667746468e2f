package usersvc

import (
	"github.com/rzbill/rolo/internal/metrics"
)

var (
	resolvesTotal = metrics.MustRegisterCounterVec(
		"resolver", "resolves_total",
		"Resolve calls by outcome (hit, resolved, miss, error).",
		"outcome",
	)
	resolveSeconds = metrics.MustRegisterHistogramVec(
		"resolver", "resolve_seconds",
		"Resolve latency by outcome.",
		metrics.DurationBuckets,
		"outcome",
	)
	fetchesTotal = metrics.MustRegisterCounterVec(
		"resolver", "fetches_total",
		"Upstream fetch attempts by outcome (ok, miss, error).",
		"outcome",
	)
	persistsTotal = metrics.MustRegisterCounterVec(
		"resolver", "persists_total",
		"Persist attempts by outcome (inserted, duplicate, error).",
		"outcome",
	)
	requeuesTotal = metrics.MustRegisterCounter(
		"resolver", "requeues_total",
		"Fetch failures that were requeued for retry.",
	)
	claimConflictsTotal = metrics.MustRegisterCounter(
		"resolver", "claim_conflicts_total",
		"Resolve calls that found the id already claimed by another caller.",
	)
	queueSizeGauge = metrics.MustRegisterGauge(
		"resolver", "queue_size",
		"Ids currently waiting in the fetch queue.",
	)
	inFlightGauge = metrics.MustRegisterGauge(
		"resolver", "in_flight",
		"Ids currently claimed for fetch-and-populate.",
	)
)
