package mailclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		From:       "Launchpad <events@launchpad.events>",
		Timeout:    5 * time.Second,
		RetryCount: 1,
		RetryDelay: time.Millisecond,
	}
}

func TestClient_Disabled(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Enabled())

	err := c.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "hi"})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestClient_NoRecipients(t *testing.T) {
	c := New(Config{APIKey: "k"})

	err := c.Send(context.Background(), Message{Subject: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestClient_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))

	err := c.Send(context.Background(), Message{
		To:      []string{"organizer@devcon.example"},
		Subject: "Wrap-up: DevCon",
		Text:    "DevCon has wrapped.",
	})
	require.NoError(t, err)

	// Sender identity comes from config, never from the caller.
	assert.Equal(t, "Launchpad <events@launchpad.events>", got.From)
	assert.Equal(t, []string{"organizer@devcon.example"}, got.To)
	assert.Equal(t, "Wrap-up: DevCon", got.Subject)
}

func TestClient_Send_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))

	err := c.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestClient_Send_ExhaustedRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))

	err := c.Send(context.Background(), Message{To: []string{"a@b.c"}, Subject: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api error")
	assert.Equal(t, 2, calls)
}
