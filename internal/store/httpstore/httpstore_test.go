package httpstore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
	"github.com/gvpusca/profilesync/internal/store/httpstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRetry_RecoversFromTransientFailure(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"available"}`))
	}))
	defer ts.Close()

	client := httpstore.New(ts.URL, httpstore.WithReadRetry(5*time.Second))
	status, err := client.CheckStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.StatusAvailable, status)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestReadRetry_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer ts.Close()

	client := httpstore.New(ts.URL, httpstore.WithReadRetry(5*time.Second))
	_, err := client.Get(context.Background(), profile.NewProfileID())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWritesAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := httpstore.New(ts.URL, httpstore.WithReadRetry(5*time.Second))
	rec := store.Record{ID: profile.NewProfileID(), Kind: store.Kind, Payload: []byte("{}")}

	_, err := client.Create(context.Background(), rec)
	assert.Error(t, err)
	_, err = client.Put(context.Background(), rec)
	assert.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := httpstore.New(ts.URL)
	_, err := client.CheckStatus(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
