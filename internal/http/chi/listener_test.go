package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/marcelsud/issue-webhooks/issue"
	"github.com/marcelsud/issue-webhooks/issue/memory"
	"github.com/marcelsud/issue-webhooks/metrics"
	"github.com/marcelsud/issue-webhooks/policy"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/delivery"
	"github.com/marcelsud/issue-webhooks/webhook/signature"
	"github.com/marcelsud/issue-webhooks/webhook/verify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "s3cret"
	sampleBody = `{"event":"issue.updated","issue_id":"abc123","new_status":"RESOLVED","updated_by":"alice@example.com"}`
)

type recordingHandler struct {
	mu     sync.Mutex
	events []webhook.Event
	err    error
	got    chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{got: make(chan struct{}, 16)}
}

func (h *recordingHandler) Handle(ctx context.Context, event webhook.Event) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	h.got <- struct{}{}
	return h.err
}

func (h *recordingHandler) Events() []webhook.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]webhook.Event(nil), h.events...)
}

func listenerAt(t *testing.T, unix int64, handler webhook.Handler) http.Handler {
	t.Helper()
	v, err := verify.New(testSecret, verify.WithClock(func() time.Time { return time.Unix(unix, 0) }))
	require.NoError(t, err)
	return ListenerHandlers(context.Background(), v, handler, nil)
}

func signedRequest(body string, ts int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(signature.HeaderName, signature.Header{
		Timestamp: ts,
		HMAC:      signature.Sign([]byte(testSecret), ts, []byte(body)),
	}.String())
	return req
}

func TestListener_Webhook(t *testing.T) {
	t.Run("accepted within the window", func(t *testing.T) {
		handler := newRecordingHandler()
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000+300, handler).ServeHTTP(w, signedRequest(sampleBody, 1700000000))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"received"}`, w.Body.String())
		require.Len(t, handler.Events(), 1)
		assert.Equal(t, webhook.Event{
			Type:       webhook.IssueUpdated,
			ResourceID: "abc123",
			NewState:   "RESOLVED",
			Actor:      "alice@example.com",
		}, handler.Events()[0])
	})

	t.Run("stale one second past the window", func(t *testing.T) {
		handler := newRecordingHandler()
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000+301, handler).ServeHTTP(w, signedRequest(sampleBody, 1700000000))

		assert.Equal(t, http.StatusRequestTimeout, w.Code)
		assert.Empty(t, handler.Events())
	})

	t.Run("tampered resource id", func(t *testing.T) {
		handler := newRecordingHandler()
		req := signedRequest(sampleBody, 1700000000)
		tampered := strings.Replace(sampleBody, "abc123", "abc124", 1)
		req.Body = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tampered)).Body

		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, handler.Events())
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := newRecordingHandler()
		req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(sampleBody))
		req.Header.Set(signature.HeaderName, "hmac=deadbeef")

		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, newRecordingHandler()).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(sampleBody)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("verified but not an event", func(t *testing.T) {
		handler := newRecordingHandler()
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, handler).ServeHTTP(w, signedRequest(`not json`, 1700000000))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid_payload"}`, w.Body.String())
		assert.Empty(t, handler.Events())
	})

	t.Run("handler error", func(t *testing.T) {
		handler := newRecordingHandler()
		handler.err = errors.New("downstream unavailable")
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, handler).ServeHTTP(w, signedRequest(sampleBody, 1700000000))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("liveness", func(t *testing.T) {
		w := httptest.NewRecorder()
		listenerAt(t, 1700000000, newRecordingHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "running")
	})
}

// TestStatusChangeReachesListener wires the backend API, the sender and the
// listener together over real HTTP
func TestStatusChangeReachesListener(t *testing.T) {
	ctx := context.Background()
	recorder := metrics.NewRecorder()

	handler := newRecordingHandler()
	v, err := verify.New(testSecret, verify.WithObserver(recorder))
	require.NoError(t, err)
	listener := httptest.NewServer(ListenerHandlers(ctx, v, handler, nil))
	t.Cleanup(listener.Close)

	destination := webhook.Destination{URL: listener.URL + "/webhook", Secret: testSecret}
	sender := delivery.NewSender(destination, policy.Default(), delivery.WithObserver(recorder))
	dispatcher := delivery.NewDispatcher(sender, zerolog.Nop())
	t.Cleanup(func() { _ = dispatcher.Shutdown(context.Background()) })

	notifier := webhook.NewService(dispatcher, destination, nil, recorder, zerolog.Nop())
	repo := memory.NewRepository()
	service := issue.NewService(repo, notifier)

	created, err := service.Create(ctx, "Printer jam", "Paper stuck in tray 2", "hardware", issue.High, "bob@example.com")
	require.NoError(t, err)

	api := Handlers(ctx, service, nil)
	req := httptest.NewRequest(http.MethodPut, "/v1/issues/"+created.ID+"/status", strings.NewReader(`{"status":"RESOLVED"}`))
	req.Header.Set(ActorHeader, "alice@example.com")
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case <-handler.got:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not receive the webhook")
	}

	require.Len(t, handler.Events(), 1)
	assert.Equal(t, webhook.Event{
		Type:       webhook.IssueUpdated,
		ResourceID: created.ID,
		NewState:   "RESOLVED",
		Actor:      "alice@example.com",
	}, handler.Events()[0])

	require.NoError(t, dispatcher.Shutdown(ctx))
	counts, err := recorder.GetVerificationCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["accepted"])

	outcomes, err := recorder.GetOutcomeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), outcomes["delivered"])
}
