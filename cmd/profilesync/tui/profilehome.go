package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/engine"
	"github.com/gvpusca/profilesync/internal/profile"
	"github.com/gvpusca/profilesync/internal/store"
)

const backupTimeFormat = "2006-01-02 15:04:05"

// ProfileHome is the active-profile screen. The status check and the
// backup record lookup run concurrently and update their own fields as
// they complete; neither blocks the other.
type ProfileHome struct {
	deps    Deps
	profile profile.Profile

	statusKnown bool
	status      store.AccountStatus
	lastBackup  string // "" until the record lookup or an upload answers
	uploading   bool
	notice      string

	adding           bool
	nameInput        textinput.Model
	confirmingDelete bool

	spin spinner.Model
}

// NewProfileHome creates the profile screen for p.
func NewProfileHome(deps Deps, p profile.Profile) ProfileHome {
	ti := textinput.New()
	ti.Placeholder = "Account name"
	ti.CharLimit = 64
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return ProfileHome{deps: deps, profile: p, nameInput: ti, spin: sp}
}

func checkStatusCmd(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Status: e.CheckStatus(context.Background())}
	}
}

func fetchRecordCmd(e *engine.Engine, id profile.ProfileID) tea.Cmd {
	return func() tea.Msg {
		_, meta, found := e.FetchOne(context.Background(), id)
		return BackupRecordMsg{Meta: meta, Found: found}
	}
}

func uploadCmd(e *engine.Engine, p profile.Profile) tea.Cmd {
	return func() tea.Msg {
		meta, err := e.Upsert(context.Background(), p)
		return UploadDoneMsg{Meta: meta, Err: err}
	}
}

// deleteCmd clears the local cache first, then issues the remote
// delete. The remote outcome decides whether navigation advances.
func deleteCmd(deps Deps, id profile.ProfileID) tea.Cmd {
	return func() tea.Msg {
		_ = cache.ClearActiveProfile(deps.Cache)
		return DeleteDoneMsg{Err: deps.Engine.Delete(context.Background(), id)}
	}
}

func (h ProfileHome) Init() tea.Cmd {
	return tea.Batch(
		h.spin.Tick,
		checkStatusCmd(h.deps.Engine),
		fetchRecordCmd(h.deps.Engine, h.profile.ID),
	)
}

func (h ProfileHome) Update(msg tea.Msg) (ProfileHome, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		h.spin, cmd = h.spin.Update(msg)
		return h, cmd

	case StatusMsg:
		h.status = msg.Status
		h.statusKnown = true
		return h, nil

	case BackupRecordMsg:
		if msg.Found {
			h.lastBackup = msg.Meta.Modified.Format(backupTimeFormat)
		} else {
			h.lastBackup = "--"
		}
		return h, nil

	case UploadDoneMsg:
		h.uploading = false
		if msg.Err != nil {
			// Non-fatal, no automatic retry: the prior label stands.
			h.notice = "Upload did not complete"
			return h, nil
		}
		h.notice = ""
		h.lastBackup = msg.Meta.Modified.Format(backupTimeFormat)
		return h, nil

	case DeleteDoneMsg:
		// Only the failure case reaches this screen; success is handled
		// by navigation.
		if msg.Err != nil {
			h.notice = "Delete failed, try again"
		}
		return h, nil

	case tea.KeyMsg:
		return h.updateKeys(msg)
	}
	return h, nil
}

func (h ProfileHome) updateKeys(msg tea.KeyMsg) (ProfileHome, tea.Cmd) {
	if h.adding {
		switch msg.String() {
		case "esc":
			h.adding = false
			h.nameInput.Reset()
			h.nameInput.Blur()
			return h, nil
		case "enter":
			name := strings.TrimSpace(h.nameInput.Value())
			if name == "" {
				name = "Account " + uuid.NewString()[:8]
			}
			h.adding = false
			h.nameInput.Reset()
			h.nameInput.Blur()
			return h.mutate(name)
		}
		var cmd tea.Cmd
		h.nameInput, cmd = h.nameInput.Update(msg)
		return h, cmd
	}

	if h.confirmingDelete {
		switch msg.String() {
		case "y", "enter":
			h.confirmingDelete = false
			return h, deleteCmd(h.deps, h.profile.ID)
		case "n", "esc":
			h.confirmingDelete = false
		}
		return h, nil
	}

	switch msg.String() {
	case "a":
		h.adding = true
		h.nameInput.Focus()
		return h, textinput.Blink
	case "d":
		h.confirmingDelete = true
		return h, nil
	case "l":
		// Local-only: clear the cache and leave. Cannot fail.
		_ = cache.ClearActiveProfile(h.deps.Cache)
		return h, func() tea.Msg { return LogoutMsg{} }
	}
	return h, nil
}

// mutate appends an account and starts the backup upload.
func (h ProfileHome) mutate(name string) (ProfileHome, tea.Cmd) {
	h.profile.AddAccount(name)
	h.uploading = true
	return h, tea.Batch(h.spin.Tick, uploadCmd(h.deps.Engine, h.profile))
}

func (h ProfileHome) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Profile") + "  " + subtitleStyle.Render(string(h.profile.ID)) + "\n\n")

	b.WriteString("  Account status: ")
	if h.statusKnown {
		b.WriteString(statusLine(h.status) + "\n")
	} else {
		b.WriteString(h.spin.View() + "\n")
	}

	b.WriteString("  Last backup:    ")
	switch {
	case h.uploading:
		b.WriteString(h.spin.View() + subtitleStyle.Render("uploading...") + "\n")
	case h.lastBackup != "":
		b.WriteString(itemStyle.Render(h.lastBackup) + "\n")
	default:
		b.WriteString(h.spin.View() + "\n")
	}

	b.WriteString("\n")
	for _, a := range h.profile.Accounts {
		b.WriteString("  " + itemStyle.Render("• "+a.Name) + "\n")
	}

	if h.adding {
		b.WriteString("\n  " + h.nameInput.View() + "\n")
		b.WriteString(helpStyle.Render("  enter: add • esc: cancel") + "\n")
	} else if h.confirmingDelete {
		b.WriteString("\n  " + warnStyle.Render("Delete this profile everywhere? (y/n)") + "\n")
	} else {
		b.WriteString("\n" + helpStyle.Render("  a: add account • d: delete profile • l: logout • ctrl+c: quit") + "\n")
	}

	if h.notice != "" {
		b.WriteString("\n  " + errStyle.Render(h.notice) + "\n")
	}
	return b.String()
}

func statusLine(s store.AccountStatus) string {
	switch s {
	case store.StatusAvailable:
		return okStyle.Render(s.String())
	case store.StatusUndetermined:
		return warnStyle.Render(s.String())
	default:
		return errStyle.Render(s.String())
	}
}
