package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

// Store is an in-memory store.Store. It backs tests (with call counters
// and failure injection) and the offline demo mode of the TUI.
type Store struct {
	mu      sync.Mutex
	records map[profile.ProfileID]store.Record
	now     func() time.Time

	// Status is returned by CheckStatus. Defaults to available.
	Status store.AccountStatus

	// Failure injection. A non-nil error makes the corresponding
	// operation fail with it.
	FailStatus error
	FailGet    error
	FailPut    error
	FailCreate error
	FailList   error
	FailDelete error

	// Call counters.
	GetCalls    int
	PutCalls    int
	CreateCalls int
	ListCalls   int
	DeleteCalls int
}

// New returns an empty in-memory store reporting an available account.
func New() *Store {
	return &Store{
		records: make(map[profile.ProfileID]store.Record),
		now:     time.Now,
		Status:  store.StatusAvailable,
	}
}

// Seed inserts a record directly, bypassing counters. Test setup helper.
func (s *Store) Seed(rec store.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.Modified.IsZero() {
		rec.Modified = s.now()
	}
	s.records[rec.ID] = rec
}

// SeedProfile encodes and inserts a profile record. Test setup helper.
func (s *Store) SeedProfile(p profile.Profile) error {
	payload, err := profile.Encode(p)
	if err != nil {
		return err
	}
	s.Seed(store.Record{ID: p.ID, Kind: store.Kind, Payload: payload})
	return nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) CheckStatus(ctx context.Context) (store.AccountStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailStatus != nil {
		return store.StatusUndetermined, s.FailStatus
	}
	return s.Status, nil
}

func (s *Store) Get(ctx context.Context, id profile.ProfileID) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.FailGet != nil {
		return store.Record{}, s.FailGet
	}
	rec, ok := s.records[id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) Put(ctx context.Context, rec store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PutCalls++
	if s.FailPut != nil {
		return store.Record{}, s.FailPut
	}
	if _, ok := s.records[rec.ID]; !ok {
		return store.Record{}, store.ErrNotFound
	}
	rec.Modified = s.now()
	s.records[rec.ID] = rec
	return rec, nil
}

func (s *Store) Create(ctx context.Context, rec store.Record) (store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateCalls++
	if s.FailCreate != nil {
		return store.Record{}, s.FailCreate
	}
	rec.Modified = s.now()
	s.records[rec.ID] = rec
	return rec, nil
}

func (s *Store) ListAll(ctx context.Context, kind string) ([]store.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.FailList != nil {
		return nil, s.FailList
	}
	var out []store.Record
	for _, rec := range s.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id profile.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.FailDelete != nil {
		return s.FailDelete
	}
	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
