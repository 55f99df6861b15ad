// Package engine implements profile synchronization against a remote
// record store: status checks, reads, the upload-or-insert protocol,
// and deletion.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

// Error kinds surfaced to callers. Both wrap the underlying store
// failure; check with errors.Is.
var (
	ErrUploadFailed = errors.New("profile upload failed")
	ErrDeleteFailed = errors.New("profile delete failed")
)

// Engine drives all remote reads and writes for profiles.
type Engine struct {
	store store.Store
	log   zerolog.Logger
}

// New returns an Engine over the given store.
func New(st store.Store) *Engine {
	return &Engine{store: st, log: log.With().Str("component", "engine").Logger()}
}

// CheckStatus reports the remote account status. It never fails the
// caller: a transport or authorization failure downgrades to
// StatusUndetermined.
func (e *Engine) CheckStatus(ctx context.Context) store.AccountStatus {
	status, err := e.store.CheckStatus(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("account status check failed")
		return store.StatusUndetermined
	}
	return status
}

// FetchOne looks up the remote record for id. Lookup is best-effort:
// absence, transport failure, and an undecodable payload all report
// found=false, since the only use is the optional last-backup display.
func (e *Engine) FetchOne(ctx context.Context, id profile.ProfileID) (profile.Profile, store.Meta, bool) {
	rec, err := e.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Warn().Err(err).Str("profile_id", string(id)).Msg("record fetch failed")
		}
		return profile.Profile{}, store.Meta{}, false
	}
	p, err := profile.Decode(rec.Payload)
	if err != nil {
		e.log.Warn().Err(err).Str("profile_id", string(id)).Msg("record payload undecodable")
		return profile.Profile{}, store.Meta{}, false
	}
	return p, rec.Meta(), true
}

// FetchAll enumerates every remote profile. Entries whose payload does
// not decode are skipped rather than aborting the listing; each skip is
// logged and counted.
func (e *Engine) FetchAll(ctx context.Context) ([]profile.Profile, error) {
	recs, err := e.store.ListAll(ctx, store.Kind)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	profiles := make([]profile.Profile, 0, len(recs))
	for _, rec := range recs {
		p, err := profile.Decode(rec.Payload)
		if err != nil {
			bulkDecodeSkipsTotal.Inc()
			e.log.Warn().Err(err).Str("record_id", string(rec.ID)).Msg("skipping undecodable record in listing")
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Upsert writes a profile to the remote store using the two-step
// upload-or-insert protocol:
//
//  1. Fetch the existing record for profile.ID.
//  2. Found: overwrite its payload and save. Last-writer-wins, no
//     version check.
//  3. Not found (the distinguished outcome, not a transport failure):
//     create a new record keyed by profile.ID and save it, exactly once.
//  4. Any other fetch failure surfaces as ErrUploadFailed without
//     attempting a create, so a connectivity problem is never mistaken
//     for a missing record.
//
// Returns the saved record's display metadata.
func (e *Engine) Upsert(ctx context.Context, p profile.Profile) (store.Meta, error) {
	payload, err := profile.Encode(p)
	if err != nil {
		return store.Meta{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	existing, err := e.store.Get(ctx, p.ID)
	switch {
	case err == nil:
		existing.Payload = payload
		saved, err := e.store.Put(ctx, existing)
		if err != nil {
			uploadsTotal.WithLabelValues("error").Inc()
			return store.Meta{}, fmt.Errorf("%w: updating record: %v", ErrUploadFailed, err)
		}
		uploadsTotal.WithLabelValues("updated").Inc()
		return saved.Meta(), nil

	case errors.Is(err, store.ErrNotFound):
		rec := store.Record{ID: p.ID, Kind: store.Kind, Payload: payload}
		saved, err := e.store.Create(ctx, rec)
		if err != nil {
			uploadsTotal.WithLabelValues("error").Inc()
			return store.Meta{}, fmt.Errorf("%w: creating record: %v", ErrUploadFailed, err)
		}
		uploadsTotal.WithLabelValues("created").Inc()
		return saved.Meta(), nil

	default:
		uploadsTotal.WithLabelValues("error").Inc()
		return store.Meta{}, fmt.Errorf("%w: fetching record: %v", ErrUploadFailed, err)
	}
}

// Delete removes the remote record for id. Absence counts as success,
// so Delete is idempotent; any other failure surfaces as ErrDeleteFailed.
func (e *Engine) Delete(ctx context.Context, id profile.ProfileID) error {
	err := e.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}
