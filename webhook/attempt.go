package webhook

import "time"

/* Attempt is one try at delivering an event
 * Ephemeral: it lives only for the duration of a delivery and is never stored
 */
type Attempt struct {
	DeliveryID string
	Event      Event
	Number     int
	// Delay is the wait before the next attempt, zero when there is none
	Delay  time.Duration
	Status Status
	Err    error
}
