package metrics

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/marcelsud/issue-webhooks/webhook"
)

/* Recorder counts delivery attempts, outcomes and verifier results in memory
 * It is both the webhook.Observer / verify.Observer fed by the sender and the
 * verifier, and the Collector read by the exporter
 */
type Recorder struct {
	mu            sync.Mutex
	attempts      map[string]int64
	outcomes      map[string]int64
	verifications map[string]int64
	now           func() time.Time
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		attempts:      make(map[string]int64),
		outcomes:      make(map[string]int64),
		verifications: make(map[string]int64),
		now:           time.Now,
	}
}

// ObserveAttempt counts one delivery attempt by its status
func (r *Recorder) ObserveAttempt(attempt webhook.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[attempt.Status.String()]++
}

// ObserveOutcome counts one event by its final status
func (r *Recorder) ObserveOutcome(status webhook.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[status.String()]++
}

// ObserveVerification counts one verified request by reason
func (r *Recorder) ObserveVerification(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifications[reason]++
}

// Collect returns a copy of all counters
func (r *Recorder) Collect(ctx context.Context) (Metrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Metrics{
		Attempts:      maps.Clone(r.attempts),
		Outcomes:      maps.Clone(r.outcomes),
		Verifications: maps.Clone(r.verifications),
		Timestamp:     r.now(),
	}, nil
}

func (r *Recorder) GetAttemptCounts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.attempts), nil
}

func (r *Recorder) GetOutcomeCounts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.outcomes), nil
}

func (r *Recorder) GetVerificationCounts(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.verifications), nil
}
