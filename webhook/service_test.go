package webhook_test

import (
	"testing"

	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func validEvent() webhook.Event {
	return webhook.Event{
		Type:       webhook.IssueUpdated,
		ResourceID: "abc123",
		NewState:   "RESOLVED",
		Actor:      "alice@example.com",
	}
}

func TestNotify(t *testing.T) {
	destination := webhook.Destination{URL: "http://listener/webhook", Secret: "s3cret"}

	t.Run("success - submits valid event", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		service := webhook.NewService(submitter, destination, nil, nil, zerolog.Nop())

		submitter.On("Submit", webhook.MatchEvent(func(e webhook.Event) bool {
			return e.Type == webhook.IssueUpdated &&
				e.ResourceID == "abc123" &&
				e.NewState == "RESOLVED" &&
				e.Actor == "alice@example.com"
		})).Return()

		service.Notify(validEvent())

		submitter.AssertExpectations(t)
	})

	t.Run("skip - missing secret", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		observer := mocks.NewObserver(t)
		observer.On("ObserveOutcome", webhook.Skipped).Return()

		service := webhook.NewService(submitter, webhook.Destination{URL: "http://listener/webhook"}, nil, observer, zerolog.Nop())
		service.Notify(validEvent())

		submitter.AssertNotCalled(t, "Submit")
	})

	t.Run("skip - missing url", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		observer := mocks.NewObserver(t)
		observer.On("ObserveOutcome", webhook.Skipped).Return()

		service := webhook.NewService(submitter, webhook.Destination{Secret: "s3cret"}, nil, observer, zerolog.Nop())
		service.Notify(validEvent())

		submitter.AssertNotCalled(t, "Submit")
	})

	t.Run("skip - event type filtered out", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		service := webhook.NewService(submitter, destination, []string{"user.*"}, nil, zerolog.Nop())

		service.Notify(validEvent())

		submitter.AssertNotCalled(t, "Submit")
	})

	t.Run("success - wildcard filter lets event through", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		service := webhook.NewService(submitter, destination, []string{"issue.*"}, nil, zerolog.Nop())

		submitter.On("Submit", validEvent()).Return()

		service.Notify(validEvent())
	})

	t.Run("skip - invalid event", func(t *testing.T) {
		submitter := mocks.NewSubmitter(t)
		service := webhook.NewService(submitter, destination, nil, nil, zerolog.Nop())

		event := validEvent()
		event.ResourceID = ""
		service.Notify(event)

		submitter.AssertNotCalled(t, "Submit")
	})
}

func TestDestination_Validate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, webhook.Destination{URL: "http://x", Secret: "s"}.Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		assert.ErrorIs(t, webhook.Destination{URL: "http://x"}.Validate(), webhook.ErrMissingSecret)
	})

	t.Run("missing url", func(t *testing.T) {
		assert.ErrorIs(t, webhook.Destination{Secret: "s"}.Validate(), webhook.ErrMissingURL)
	})
}
