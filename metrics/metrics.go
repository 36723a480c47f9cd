package metrics

import (
	"context"
	"time"
)

// Metrics represents the counters of the webhook system since process start.
type Metrics struct {
	// Attempts maps attempt status (delivered, retrying, failed) to attempt count
	Attempts map[string]int64 `json:"attempts"`

	// Outcomes maps final status (delivered, failed, skipped) to event count
	Outcomes map[string]int64 `json:"outcomes"`

	// Verifications maps verifier reason (accepted, stale, ...) to request count
	Verifications map[string]int64 `json:"verifications"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the webhook system.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetAttemptCounts returns delivery attempts by attempt status
	GetAttemptCounts(ctx context.Context) (map[string]int64, error)

	// GetOutcomeCounts returns delivered events by final status
	GetOutcomeCounts(ctx context.Context) (map[string]int64, error)

	// GetVerificationCounts returns verified requests by reason
	GetVerificationCounts(ctx context.Context) (map[string]int64, error)
}
