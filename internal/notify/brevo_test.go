package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleettrack-backend/internal/platform/db"
)

func newTestBrevo(baseURL string) *Brevo {
	return NewBrevo(db.MailConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		SenderName:  "Fleet Tracker",
		SenderEmail: "fleet@example.com",
	})
}

func TestSendSuccessStatuses(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		b := newTestBrevo(srv.URL)
		assert.True(t, b.Send(context.Background(), "s", "<p>b</p>", "to@example.com"), "status %d", status)
		srv.Close()
	}
}

func TestSendFailureStatuses(t *testing.T) {
	// Only 200/201 count; redirects and errors alike are failures.
	for _, status := range []int{http.StatusMovedPermanently, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		b := newTestBrevo(srv.URL)
		b.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
		assert.False(t, b.Send(context.Background(), "s", "b", "to@example.com"), "status %d", status)
		srv.Close()
	}
}

func TestSendPayloadShape(t *testing.T) {
	var got map[string]any
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	b := newTestBrevo(srv.URL)
	require.True(t, b.Send(context.Background(), "Monthly Fleet Expiry Report", "<h3>report</h3>", "ops@example.com"))

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Monthly Fleet Expiry Report", got["subject"])
	assert.Equal(t, "<h3>report</h3>", got["htmlContent"])
	sender := got["sender"].(map[string]any)
	assert.Equal(t, "fleet@example.com", sender["email"])
	to := got["to"].([]any)
	require.Len(t, to, 1)
	assert.Equal(t, "ops@example.com", to[0].(map[string]any)["email"])
}

func TestSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	b := newTestBrevo(srv.URL)
	b.client.Timeout = 20 * time.Millisecond

	// Must come back false, not panic or hang.
	assert.False(t, b.Send(context.Background(), "s", "b", "to@example.com"))
}

func TestSendWithoutKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	b := NewBrevo(db.MailConfig{BaseURL: srv.URL})
	assert.False(t, b.Enabled())
	assert.False(t, b.Send(context.Background(), "s", "b", "to@example.com"))
	assert.Zero(t, calls, "no API call without a key")
}
