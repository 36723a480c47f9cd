package webhook

import (
	"fmt"

	"github.com/marcelsud/issue-webhooks/webhook/payload"
)

const (
	// IssueUpdated is emitted when an issue's status changes
	IssueUpdated = "issue.updated"

	// SystemActor identifies changes with no known user
	SystemActor = "System"
)

/* Event is the unit of transmission
 * Uses value semantics as it represents data, not behavior
 * Consumers must treat it as a point-in-time snapshot, not a delta
 */
type Event struct {
	Type       string `json:"event"`
	ResourceID string `json:"issue_id"`
	NewState   string `json:"new_status"`
	Actor      string `json:"updated_by"`
}

// Validate checks that the event can be serialized and sent
func (e Event) Validate() error {
	if err := payload.ValidateEventType(e.Type); err != nil {
		return fmt.Errorf("invalid event type: %w", err)
	}
	if e.ResourceID == "" {
		return fmt.Errorf("resource id is required")
	}
	if e.NewState == "" {
		return fmt.Errorf("new state is required")
	}
	if e.Actor == "" {
		return fmt.Errorf("actor is required")
	}
	return nil
}

// Bytes returns the canonical wire form of the event.
// Callers sending the event must call it once and reuse the result.
func (e Event) Bytes() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validating event: %w", err)
	}
	return payload.Marshal(e)
}

// ParseEvent decodes and validates an event received on the wire
func ParseEvent(data []byte) (Event, error) {
	var e Event
	if err := payload.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	if err := e.Validate(); err != nil {
		return Event{}, fmt.Errorf("validating event: %w", err)
	}
	return e, nil
}
