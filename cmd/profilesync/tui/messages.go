package tui

import (
	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

// --- Navigation-level messages ---

// LocalProfileMsg carries the result of the splash-time cache read.
// Found=false with a nil Err means a fresh device; a non-nil Err means
// the cached blob exists but no longer decodes (fatal).
type LocalProfileMsg struct {
	Profile profile.Profile
	Found   bool
	Err     error
}

// OnboardingDoneMsg is emitted after the chosen or created profile has
// been committed to the local cache.
type OnboardingDoneMsg struct{ Profile profile.Profile }

// LogoutMsg is emitted after the local cache has been cleared.
type LogoutMsg struct{}

// DeleteDoneMsg carries the outcome of the remote delete. A nil Err
// (including the already-absent case) completes the delete and returns
// navigation to onboarding; a non-nil Err leaves the profile screen up.
type DeleteDoneMsg struct{ Err error }

// --- Flow-level async results ---

// BackupsLoadedMsg carries the remote profile listing. Gen matches the
// fetch generation that issued it; stale generations are discarded.
type BackupsLoadedMsg struct {
	Gen      int
	Profiles []profile.Profile
	Err      error
}

// CommitFailedMsg reports a failed cache write during onboarding.
type CommitFailedMsg struct{ Err error }

// StatusMsg carries the remote account status check result.
type StatusMsg struct{ Status store.AccountStatus }

// BackupRecordMsg carries the remote record lookup for the active
// profile, used only for the last-backup display.
type BackupRecordMsg struct {
	Meta  store.Meta
	Found bool
}

// UploadDoneMsg carries the outcome of an upsert.
type UploadDoneMsg struct {
	Meta store.Meta
	Err  error
}
