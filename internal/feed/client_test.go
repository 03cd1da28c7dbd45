package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/californiaroad/cwwp-catalog/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientPull(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/data/d3/cc/ccStatusD03.json", r.URL.Path)
		io.WriteString(w, cleanBody)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, time.Minute, testLogger())

	env, err := client.Pull(context.Background(), domain.TypeChainControl, 3)
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, domain.TypeChainControl, env.Data[0].Type)

	// second pull inside the TTL is served from cache
	_, err = client.Pull(context.Background(), domain.TypeChainControl, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestClientPull_CacheDisabled(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		io.WriteString(w, cleanBody)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, 0, testLogger())

	_, err := client.Pull(context.Background(), domain.TypeChainControl, 3)
	require.NoError(t, err)
	_, err = client.Pull(context.Background(), domain.TypeChainControl, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestClientPull_UpstreamErrors(t *testing.T) {
	t.Run("non-OK status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 0, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeCamera, 4)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("html body with OK status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "\n  <html><body>scheduled maintenance</body></html>")
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 0, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeCamera, 4)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 0, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeCamera, 4)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("connection refused", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second, 0, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeCamera, 4)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("garbage body is a parse error not an upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"data":[{"cc":`)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, 0, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeCamera, 4)
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrUpstream)
	})

	t.Run("failed pulls are not cached", func(t *testing.T) {
		var hits atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			io.WriteString(w, cleanBody)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, time.Minute, testLogger())
		_, err := client.Pull(context.Background(), domain.TypeChainControl, 3)
		require.ErrorIs(t, err, ErrUpstream)

		env, err := client.Pull(context.Background(), domain.TypeChainControl, 3)
		require.NoError(t, err)
		assert.Len(t, env.Data, 1)
	})
}
