package webhook

import (
	"context"

	"github.com/marcelsud/issue-webhooks/webhook/payload"
	"github.com/rs/zerolog"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */
type Service struct {
	Submitter   Submitter
	Destination Destination
	// EventTypes filters which events are sent; empty sends all
	EventTypes []string
	Observer   Observer
	Logger     zerolog.Logger
}

// NewService creates a new webhook service with dependency injection
func NewService(submitter Submitter, destination Destination, eventTypes []string, observer Observer, logger zerolog.Logger) *Service {
	if observer == nil {
		observer = NopObserver()
	}
	return &Service{
		Submitter:   submitter,
		Destination: destination,
		EventTypes:  eventTypes,
		Observer:    observer,
		Logger:      logger,
	}
}

// Notify validates the event and submits it for background delivery.
// Missing configuration and invalid events are logged and dropped.
func (s *Service) Notify(event Event) {
	logger := s.Logger.With().
		Str("event", event.Type).
		Str("resource_id", event.ResourceID).
		Logger()

	if err := s.Destination.Validate(); err != nil {
		logger.Warn().Err(err).Msg("webhook not configured, skipping")
		s.Observer.ObserveOutcome(Skipped)
		return
	}

	if !payload.MatchesEventType(event.Type, s.EventTypes) {
		logger.Debug().Strs("event_types", s.EventTypes).Msg("event type filtered out")
		s.Observer.ObserveOutcome(Skipped)
		return
	}

	if err := event.Validate(); err != nil {
		logger.Warn().Err(err).Msg("invalid webhook event, dropping")
		s.Observer.ObserveOutcome(Skipped)
		return
	}

	s.Submitter.Submit(event)
}

// LogHandler is the default receiving-side Handler; it only logs events
type LogHandler struct {
	Logger zerolog.Logger
}

// Handle logs the event
func (h LogHandler) Handle(ctx context.Context, event Event) error {
	h.Logger.Info().
		Str("event", event.Type).
		Str("resource_id", event.ResourceID).
		Str("new_state", event.NewState).
		Str("actor", event.Actor).
		Msg("webhook received")
	return nil
}
