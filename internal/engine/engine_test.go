package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gvpusca/profilesync/internal/engine"
	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
	"github.com/gvpusca/profilesync/internal/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection reset")

func TestUpsert_CreatesWhenAbsent(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)
	p := profile.New("Alice")

	meta, err := e.Upsert(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, meta.ProfileID)
	assert.False(t, meta.Modified.IsZero())

	assert.Equal(t, 1, st.GetCalls)
	assert.Equal(t, 1, st.CreateCalls)
	assert.Equal(t, 0, st.PutCalls)
}

func TestUpsert_UpdatesWhenPresent(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)
	p := profile.New("Alice")
	require.NoError(t, st.SeedProfile(p))

	p.AddAccount("Bob")
	_, err := e.Upsert(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 1, st.GetCalls)
	assert.Equal(t, 1, st.PutCalls)
	assert.Equal(t, 0, st.CreateCalls)
}

func TestUpsert_RoundTrip(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)
	p := profile.New("Alice")
	p.AddAccount("Bob")

	_, err := e.Upsert(context.Background(), p)
	require.NoError(t, err)

	got, _, found := e.FetchOne(context.Background(), p.ID)
	require.True(t, found)
	assert.True(t, p.Equal(got))
}

func TestUpsert_TransportErrorDoesNotCreate(t *testing.T) {
	st := memstore.New()
	st.FailGet = errTransport
	e := engine.New(st)

	_, err := e.Upsert(context.Background(), profile.New("Alice"))
	assert.ErrorIs(t, err, engine.ErrUploadFailed)
	assert.Equal(t, 0, st.CreateCalls)
	assert.Equal(t, 0, st.PutCalls)
}

func TestUpsert_CreateFailureSurfaces(t *testing.T) {
	st := memstore.New()
	st.FailCreate = errTransport
	e := engine.New(st)

	_, err := e.Upsert(context.Background(), profile.New("Alice"))
	assert.ErrorIs(t, err, engine.ErrUploadFailed)
	// The create path is attempted exactly once, no retry.
	assert.Equal(t, 1, st.CreateCalls)
}

func TestUpsert_SaveFailureSurfaces(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)
	p := profile.New("Alice")
	require.NoError(t, st.SeedProfile(p))
	st.FailPut = errTransport

	_, err := e.Upsert(context.Background(), p)
	assert.ErrorIs(t, err, engine.ErrUploadFailed)
	assert.Equal(t, 0, st.CreateCalls)
}

func TestDelete_Idempotent(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)

	// No remote record: still success.
	assert.NoError(t, e.Delete(context.Background(), profile.NewProfileID()))
}

func TestDelete_TransportErrorSurfaces(t *testing.T) {
	st := memstore.New()
	st.FailDelete = errTransport
	e := engine.New(st)

	err := e.Delete(context.Background(), profile.NewProfileID())
	assert.ErrorIs(t, err, engine.ErrDeleteFailed)
}

func TestCheckStatus_DowngradesOnFailure(t *testing.T) {
	st := memstore.New()
	st.FailStatus = errTransport
	e := engine.New(st)

	assert.Equal(t, store.StatusUndetermined, e.CheckStatus(context.Background()))
}

func TestCheckStatus_PassesThrough(t *testing.T) {
	st := memstore.New()
	st.Status = store.StatusNoAccount
	e := engine.New(st)

	assert.Equal(t, store.StatusNoAccount, e.CheckStatus(context.Background()))
}

func TestFetchOne_AbsentAndErrorLookAlike(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)

	_, _, found := e.FetchOne(context.Background(), profile.NewProfileID())
	assert.False(t, found)

	st.FailGet = errTransport
	_, _, found = e.FetchOne(context.Background(), profile.NewProfileID())
	assert.False(t, found)
}

func TestFetchAll_SkipsUndecodableEntries(t *testing.T) {
	st := memstore.New()
	e := engine.New(st)

	good := profile.New("Alice")
	require.NoError(t, st.SeedProfile(good))
	st.Seed(store.Record{ID: profile.NewProfileID(), Kind: store.Kind, Payload: []byte("garbage")})

	profiles, err := e.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.True(t, good.Equal(profiles[0]))
}

func TestFetchAll_ListFailureSurfaces(t *testing.T) {
	st := memstore.New()
	st.FailList = errTransport
	e := engine.New(st)

	_, err := e.FetchAll(context.Background())
	assert.Error(t, err)
}
