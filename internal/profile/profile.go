package profile

import (
	"github.com/google/uuid"
)

// AccountID uniquely identifies an account within a profile.
// Generated client-side, immutable once created.
type AccountID string

// ProfileID uniquely identifies a profile. It doubles as the remote
// store's record key and never changes for the profile's lifetime.
type ProfileID string

// NewAccountID returns a fresh random account id.
func NewAccountID() AccountID {
	return AccountID(uuid.NewString())
}

// NewProfileID returns a fresh random profile id.
func NewProfileID() ProfileID {
	return ProfileID(uuid.NewString())
}

// Account is a named account owned by a profile.
type Account struct {
	ID   AccountID `json:"id"`
	Name string    `json:"name"`
}

// Profile is the user's synchronizable unit of data: an ordered list
// of accounts. Exactly one profile is active per device at a time.
type Profile struct {
	ID       ProfileID `json:"id"`
	Accounts []Account `json:"accounts"`
}

// New creates a profile with a single account named firstAccountName.
func New(firstAccountName string) Profile {
	return Profile{
		ID:       NewProfileID(),
		Accounts: []Account{{ID: NewAccountID(), Name: firstAccountName}},
	}
}

// AddAccount appends a new account and returns it.
func (p *Profile) AddAccount(name string) Account {
	acct := Account{ID: NewAccountID(), Name: name}
	p.Accounts = append(p.Accounts, acct)
	return acct
}

// RemoveAccount deletes the account with the given id, preserving the
// order of the remaining accounts. Returns false if no account matched.
func (p *Profile) RemoveAccount(id AccountID) bool {
	for i, a := range p.Accounts {
		if a.ID == id {
			p.Accounts = append(p.Accounts[:i], p.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Equal reports whether two profiles have the same id and the same
// accounts in the same order.
func (p Profile) Equal(other Profile) bool {
	if p.ID != other.ID || len(p.Accounts) != len(other.Accounts) {
		return false
	}
	for i, a := range p.Accounts {
		if a != other.Accounts[i] {
			return false
		}
	}
	return true
}
