package store

import (
	"context"
	"errors"
	"time"

	"github.com/gvpusca/profilesync/internal/profile"
)

// Kind is the single record kind used by the profile store.
const Kind = "profile"

// ErrNotFound is the distinguished "no record for this id" outcome. It
// is not a transport failure: callers branch on it with errors.Is to
// decide between the update and create paths of an upsert.
var ErrNotFound = errors.New("record not found")

// Record is an opaque payload blob keyed by profile id plus the remote
// store's modification timestamp.
type Record struct {
	ID       profile.ProfileID `json:"id"`
	Kind     string            `json:"kind"`
	Payload  []byte            `json:"payload"`
	Modified time.Time         `json:"modified"`
}

// Meta is the display-only metadata of a remote record. It is never
// used for conflict arbitration.
type Meta struct {
	ProfileID profile.ProfileID
	Modified  time.Time
}

// Meta returns the record's display metadata.
func (r Record) Meta() Meta {
	return Meta{ProfileID: r.ID, Modified: r.Modified}
}

// AccountStatus reflects the remote store's reachability and
// authorization state, independent of any specific record.
type AccountStatus int

const (
	StatusUndetermined AccountStatus = iota
	StatusAvailable
	StatusNoAccount
	StatusRestricted
	StatusTemporarilyUnavailable
)

// String returns the display label for a status.
func (s AccountStatus) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusNoAccount:
		return "No Account"
	case StatusRestricted:
		return "Restricted"
	case StatusTemporarilyUnavailable:
		return "Temporarily Unavailable"
	default:
		return "Could not determine"
	}
}

// ParseAccountStatus maps a wire label back to a status. Unknown labels
// map to StatusUndetermined.
func ParseAccountStatus(s string) AccountStatus {
	switch s {
	case "available":
		return StatusAvailable
	case "noAccount":
		return StatusNoAccount
	case "restricted":
		return StatusRestricted
	case "temporarilyUnavailable":
		return StatusTemporarilyUnavailable
	default:
		return StatusUndetermined
	}
}

// Label returns the wire label for a status (inverse of ParseAccountStatus).
func (s AccountStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusNoAccount:
		return "noAccount"
	case StatusRestricted:
		return "restricted"
	case StatusTemporarilyUnavailable:
		return "temporarilyUnavailable"
	default:
		return "undetermined"
	}
}

// Store is the remote profile store contract: an opaque K/V store with
// one record per profile id. Create and Put are independent primitives;
// there is no native upsert (see engine.Upsert for the protocol built
// on top).
//
// Get and Delete return ErrNotFound when no record exists for the id;
// any other error is a transport or authorization failure.
type Store interface {
	CheckStatus(ctx context.Context) (AccountStatus, error)
	Get(ctx context.Context, id profile.ProfileID) (Record, error)
	Put(ctx context.Context, rec Record) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	ListAll(ctx context.Context, kind string) ([]Record, error)
	Delete(ctx context.Context, id profile.ProfileID) error
}
