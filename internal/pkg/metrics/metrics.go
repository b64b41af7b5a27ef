// Package metrics holds the Prometheus collectors of the procurement service.
// Collectors register on the default registry, which /metrics exposes.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"procurement/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "procurement"

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Handled commands by name and outcome.",
	}, []string{"command", "outcome"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Command latency including conflict retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})

	conflictRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conflict_retries_total",
		Help:      "Optimistic concurrency conflicts that triggered a retry.",
	}, []string{"command"})

	eventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_emitted_total",
		Help:      "Domain events handed to the notification emitter.",
	}, []string{"kind", "outcome"})

	comparisonCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comparison_cache_total",
		Help:      "Quote comparison cache lookups by result.",
	}, []string{"result"})

	ordersByStatus = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Order status transitions by target status.",
	}, []string{"status"})

	httpRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

// ObserveCommand records the outcome and latency of one command.
func ObserveCommand(command string, started time.Time, err error) {
	commandsTotal.WithLabelValues(command, Outcome(err)).Inc()
	commandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}

// ConflictRetry counts one retried optimistic concurrency conflict.
func ConflictRetry(command string) {
	conflictRetries.WithLabelValues(command).Inc()
}

// EventEmitted counts a delivered or failed notification.
func EventEmitted(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	eventsEmitted.WithLabelValues(kind, outcome).Inc()
}

// CacheLookup counts a comparison cache hit or miss.
func CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	comparisonCache.WithLabelValues(result).Inc()
}

// OrderTransition counts an order entering status.
func OrderTransition(status string) {
	ordersByStatus.WithLabelValues(status).Inc()
}

// ObserveRequest records one served HTTP request. route is the matched template, not the raw path.
func ObserveRequest(method, route string, code int, started time.Time) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(time.Since(started).Seconds())
}

// Outcome classifies an error into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errs.IsValidation(err):
		return "invalid"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrConcurrentModification):
		return "conflict"
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrOrderNotOpen):
		return "rejected"
	case errors.Is(err, errs.ErrIncompleteAllocation),
		errors.Is(err, errs.ErrInvalidOverride),
		errors.Is(err, errs.ErrLineItemMismatch):
		return "unprocessable"
	default:
		return "error"
	}
}
