package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClient_GetReturnsNon2xxWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewRestyClient(nil)
	resp, err := c.Get(context.Background(), srv.URL+"/missing", nil, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Close() })

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Reason)
	assert.Equal(t, srv.URL+"/missing", resp.EffectiveURL)
	assert.False(t, resp.IsSuccessful())
}

func TestRestyClient_GetWithExceptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewRestyClient(nil)
	resp, err := c.Get(context.Background(), srv.URL, nil, Options{Exceptions: true})
	assert.Nil(t, resp)

	var statusErr *StatusError
	if assert.ErrorAs(t, err, &statusErr) {
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.Equal(t, "Bad Gateway", statusErr.Reason)
	}
}

func TestRestyClient_GetStreamsBodyAndHeaders(t *testing.T) {
	accept := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept <- r.Header.Get("Accept")
		w.Header().Set("X-Whisper", "yes")
		_, _ = io.WriteString(w, "hello world")
	}))
	t.Cleanup(srv.Close)

	c := NewRestyClient(nil)
	resp, err := c.Get(context.Background(), srv.URL, http.Header{"Accept": {"*/*"}}, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Close() })

	assert.Equal(t, "*/*", <-accept)
	assert.Equal(t, "yes", resp.Header.Get("X-Whisper"))
	assert.Equal(t, int64(11), resp.Body.Size())

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", string(body))
	assert.True(t, resp.Body.EOF())
}

func TestRestyClient_EffectiveURLFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "moved")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewRestyClient(nil)
	resp, err := c.Get(context.Background(), srv.URL+"/old", nil, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Close() })

	assert.Equal(t, srv.URL+"/new", resp.EffectiveURL)
}

func TestRestyClient_SetOAuth1SignsRequests(t *testing.T) {
	var mu sync.Mutex
	var authorization []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		authorization = append(authorization, r.Header.Get("Authorization"))
	}))
	t.Cleanup(srv.Close)

	c := NewRestyClient(nil)
	get := func() {
		resp, err := c.Get(context.Background(), srv.URL, nil, Options{})
		require.NoError(t, err)
		_ = resp.Close()
	}

	get()
	c.SetOAuth1("first-key", "first-secret")
	get()
	c.SetOAuth1("second-key", "second-secret")
	get()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, authorization, 3)
	assert.Empty(t, authorization[0])

	assert.True(t, strings.HasPrefix(authorization[1], "OAuth "))
	assert.Contains(t, authorization[1], `oauth_consumer_key="first-key"`)
	assert.Contains(t, authorization[1], `oauth_signature_method="HMAC-SHA1"`)

	assert.Contains(t, authorization[2], `oauth_consumer_key="second-key"`)
	assert.NotContains(t, authorization[2], "first-key")
}

func TestRestyClient_SetBaseURL(t *testing.T) {
	c := NewRestyClient(nil)
	c.SetBaseURL("http://example.com")
	assert.Equal(t, "http://example.com", c.Resty().BaseURL)
}

func TestRestyClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewRestyClient(nil)
	resp, err := c.Get(context.Background(), url, nil, Options{})
	assert.Nil(t, resp)
	assert.Error(t, err)
}
