package adminlog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_LoadFetchesOnce(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/admin/logs", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"n":2,"results":[
			{"ts":1700000000,"raw":"spam text","action":"block","matched_seed":"spam","score":0.91},
			{"ts":1700000100,"raw":"more spam","action":"block","score":0.88}
		]}`))
	}))
	defer server.Close()

	cache := NewCache(server.URL, 50, 5*time.Second)

	entries, count, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, entries, 2)
	assert.Equal(t, "spam text", entries[0].Raw)
	assert.Equal(t, "spam", entries[0].MatchedSeed)

	// Second load returns the same snapshot without another request
	again, againCount, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, count, againCount)
	assert.Equal(t, entries, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestCache_LoadCachesFailure(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cache := NewCache(server.URL, 50, 5*time.Second)

	_, _, err := cache.Load(context.Background())
	require.Error(t, err)

	// The failure is cached too: no re-fetch on the second call
	_, _, err = cache.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestCache_ResetAllowsRefetch(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"n":0,"results":[]}`))
	}))
	defer server.Close()

	cache := NewCache(server.URL, 50, 5*time.Second)

	_, _, err := cache.Load(context.Background())
	require.NoError(t, err)

	cache.Reset()

	_, _, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestCache_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	cache := NewCache(server.URL, 50, 5*time.Second)

	_, _, err := cache.Load(context.Background())
	assert.Error(t, err)
}
