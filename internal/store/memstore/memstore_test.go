package memstore_test

import (
	"context"
	"testing"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
	"github.com/gvpusca/profilesync/internal/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut_RequiresExistingRecord(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()
	rec := store.Record{ID: profile.NewProfileID(), Kind: store.Kind, Payload: []byte("{}")}

	_, err := st.Put(ctx, rec)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Create(ctx, rec)
	require.NoError(t, err)

	saved, err := st.Put(ctx, rec)
	require.NoError(t, err)
	assert.False(t, saved.Modified.IsZero())
}

func TestListAll_FiltersByKind(t *testing.T) {
	st := memstore.New()
	st.Seed(store.Record{ID: profile.NewProfileID(), Kind: store.Kind, Payload: []byte("{}")})
	st.Seed(store.Record{ID: profile.NewProfileID(), Kind: "other", Payload: []byte("{}")})

	recs, err := st.ListAll(context.Background(), store.Kind)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestDelete_Absent(t *testing.T) {
	st := memstore.New()
	err := st.Delete(context.Background(), profile.NewProfileID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
