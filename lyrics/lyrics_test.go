package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return &Client{HTTP: server.Client(), BaseURL: server.URL}, server
}

func TestFetch(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "never gonna give you up", r.URL.Query().Get("title"))
		w.Write([]byte(`{"title":"Never Gonna Give You Up","lyrics":"We're no strangers to love"}`))
	})
	defer server.Close()

	result, err := c.Fetch(context.Background(), "never gonna give you up")

	assert.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", result.Title)
	assert.Equal(t, "We're no strangers to love", result.Lyrics)
}

func TestFetch_APIError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Sorry I couldn't find that song's lyrics"}`))
	})
	defer server.Close()

	_, err := c.Fetch(context.Background(), "unknown")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_EmptyLyrics(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"something","lyrics":""}`))
	})
	defer server.Close()

	_, err := c.Fetch(context.Background(), "something")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_HTTPError(t *testing.T) {
	c, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := c.Fetch(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrNotFound)
}
