package server_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gvpusca/profilesync/internal/engine"
	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/server"
	"github.com/gvpusca/profilesync/internal/store"
	"github.com/gvpusca/profilesync/internal/store/httpstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRemote serves the dev server over httptest and returns an
// httpstore client pointed at it.
func setupRemote(t *testing.T, status store.AccountStatus) *httpstore.Client {
	t.Helper()
	ts := httptest.NewServer(server.New(status).Router())
	t.Cleanup(ts.Close)
	return httpstore.New(ts.URL)
}

func TestStatusEndpoint(t *testing.T) {
	client := setupRemote(t, store.StatusNoAccount)

	status, err := client.CheckStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.StatusNoAccount, status)
}

func TestGet_NotFound(t *testing.T) {
	client := setupRemote(t, store.StatusAvailable)

	_, err := client.Get(context.Background(), profile.NewProfileID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateGetPutDelete(t *testing.T) {
	client := setupRemote(t, store.StatusAvailable)
	ctx := context.Background()

	p := profile.New("Alice")
	payload, err := profile.Encode(p)
	require.NoError(t, err)

	created, err := client.Create(ctx, store.Record{ID: p.ID, Kind: store.Kind, Payload: payload})
	require.NoError(t, err)
	assert.False(t, created.Modified.IsZero())

	got, err := client.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, got.Payload)

	// Creating the same id again conflicts.
	_, err = client.Create(ctx, store.Record{ID: p.ID, Kind: store.Kind, Payload: payload})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	p.AddAccount("Bob")
	payload2, err := profile.Encode(p)
	require.NoError(t, err)
	got.Payload = payload2
	updated, err := client.Put(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, payload2, updated.Payload)

	require.NoError(t, client.Delete(ctx, p.ID))
	err = client.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPut_AbsentRecordIsNotFound(t *testing.T) {
	client := setupRemote(t, store.StatusAvailable)

	p := profile.New("Alice")
	payload, err := profile.Encode(p)
	require.NoError(t, err)

	_, err = client.Put(context.Background(), store.Record{ID: p.ID, Kind: store.Kind, Payload: payload})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_FiltersByKind(t *testing.T) {
	client := setupRemote(t, store.StatusAvailable)
	ctx := context.Background()

	p := profile.New("Alice")
	payload, err := profile.Encode(p)
	require.NoError(t, err)
	_, err = client.Create(ctx, store.Record{ID: p.ID, Kind: store.Kind, Payload: payload})
	require.NoError(t, err)
	_, err = client.Create(ctx, store.Record{ID: profile.NewProfileID(), Kind: "other", Payload: []byte("{}")})
	require.NoError(t, err)

	recs, err := client.ListAll(ctx, store.Kind)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, p.ID, recs[0].ID)
}

// The upsert protocol against a live HTTP round trip.
func TestEngineUpsert_OverHTTP(t *testing.T) {
	client := setupRemote(t, store.StatusAvailable)
	e := engine.New(client)
	ctx := context.Background()

	p := profile.New("Alice")
	meta, err := e.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, meta.ProfileID)

	p.AddAccount("Bob")
	_, err = e.Upsert(ctx, p)
	require.NoError(t, err)

	got, _, found := e.FetchOne(ctx, p.ID)
	require.True(t, found)
	assert.True(t, p.Equal(got))
}
