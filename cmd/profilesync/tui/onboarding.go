package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/profile"
)

// onboardingStep is the position inside the first-run flow.
type onboardingStep int

const (
	stepWelcome onboardingStep = iota
	stepCreate                 // drafting the first account name
	stepRestore                // picking a remote backup
)

// fetchState tracks the backup listing request.
type fetchState int

const (
	fetchLoading fetchState = iota
	fetchLoaded
)

// welcome menu entries.
const (
	welcomeNewProfile = iota
	welcomeRestore
)

// Onboarding is the first-run flow: create a new profile, or restore
// one from the remote backups, then commit it to the local cache.
type Onboarding struct {
	deps Deps
	step onboardingStep

	// welcome
	cursor int

	// create
	nameInput textinput.Model

	// restore
	fetch      fetchState
	backups    []profile.Profile
	listCursor int
	selected   profile.ProfileID // "" means none
	fetchErr   string
	gen        int // fetch generation; stale results are discarded

	spin   spinner.Model
	notice string
}

// NewOnboarding creates the onboarding model at the welcome step.
func NewOnboarding(deps Deps) Onboarding {
	ti := textinput.New()
	ti.Placeholder = "First account name"
	ti.CharLimit = 64
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Onboarding{deps: deps, nameInput: ti, spin: sp}
}

// fetchBackupsCmd lists the remote backups. The flow transitions to
// loaded on completion regardless of success; a listing failure shows
// as an empty list with a notice.
func fetchBackupsCmd(deps Deps, gen int) tea.Cmd {
	return func() tea.Msg {
		profiles, err := deps.Engine.FetchAll(context.Background())
		return BackupsLoadedMsg{Gen: gen, Profiles: profiles, Err: err}
	}
}

// commitProfileCmd writes the profile to the local cache and only then
// reports completion (commit-before-notify).
func commitProfileCmd(c cache.Cache, p profile.Profile) tea.Cmd {
	return func() tea.Msg {
		if err := cache.WriteActiveProfile(c, p); err != nil {
			return CommitFailedMsg{Err: err}
		}
		return OnboardingDoneMsg{Profile: p}
	}
}

func (o Onboarding) Init() tea.Cmd {
	return nil
}

func (o Onboarding) Update(msg tea.Msg) (Onboarding, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		o.spin, cmd = o.spin.Update(msg)
		return o, cmd

	case BackupsLoadedMsg:
		// Discard results from a fetch the user has navigated away from.
		if o.step != stepRestore || msg.Gen != o.gen {
			return o, nil
		}
		o.fetch = fetchLoaded
		o.backups = msg.Profiles
		if msg.Err != nil {
			o.fetchErr = "Could not load backups"
		}
		return o, nil

	case CommitFailedMsg:
		o.notice = fmt.Sprintf("Could not save profile: %v", msg.Err)
		return o, nil

	case tea.KeyMsg:
		switch o.step {
		case stepWelcome:
			return o.updateWelcome(msg)
		case stepCreate:
			return o.updateCreate(msg)
		case stepRestore:
			return o.updateRestore(msg)
		}
	}
	return o, nil
}

func (o Onboarding) updateWelcome(msg tea.KeyMsg) (Onboarding, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if o.cursor > 0 {
			o.cursor--
		}
	case "down", "j":
		if o.cursor < welcomeRestore {
			o.cursor++
		}
	case "enter":
		if o.cursor == welcomeNewProfile {
			o.step = stepCreate
			o.nameInput.Focus()
			return o, textinput.Blink
		}
		o.step = stepRestore
		o.fetch = fetchLoading
		o.backups = nil
		o.selected = ""
		o.listCursor = 0
		o.fetchErr = ""
		o.gen++
		return o, tea.Batch(o.spin.Tick, fetchBackupsCmd(o.deps, o.gen))
	}
	return o, nil
}

func (o Onboarding) updateCreate(msg tea.KeyMsg) (Onboarding, tea.Cmd) {
	switch msg.String() {
	case "esc":
		o.step = stepWelcome
		o.nameInput.Reset()
		o.nameInput.Blur()
		return o, nil
	case "enter":
		name := strings.TrimSpace(o.nameInput.Value())
		if name == "" {
			return o, nil
		}
		p := profile.New(name)
		return o, commitProfileCmd(o.deps.Cache, p)
	}
	var cmd tea.Cmd
	o.nameInput, cmd = o.nameInput.Update(msg)
	return o, cmd
}

func (o Onboarding) updateRestore(msg tea.KeyMsg) (Onboarding, tea.Cmd) {
	switch msg.String() {
	case "esc":
		o.step = stepWelcome
		return o, nil
	case "up", "k":
		if o.listCursor > 0 {
			o.listCursor--
		}
	case "down", "j":
		if o.listCursor < len(o.backups)-1 {
			o.listCursor++
		}
	case " ":
		// Selection is advisory until confirmed.
		if o.fetch == fetchLoaded && o.listCursor < len(o.backups) {
			o.selected = o.backups[o.listCursor].ID
		}
	case "enter":
		if o.selected == "" {
			return o, nil
		}
		for _, p := range o.backups {
			if p.ID == o.selected {
				return o, commitProfileCmd(o.deps.Cache, p)
			}
		}
	}
	return o, nil
}

func (o Onboarding) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("profilesync") + "\n")

	switch o.step {
	case stepWelcome:
		b.WriteString("  " + subtitleStyle.Render("Keep your accounts backed up and in sync.") + "\n\n")
		entries := []string{"New Profile", "Restore from backup"}
		for i, e := range entries {
			if i == o.cursor {
				b.WriteString("  " + selectedStyle.Render("> "+e) + "\n")
			} else {
				b.WriteString("  " + itemStyle.Render("  "+e) + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("  up/down: move • enter: choose • ctrl+c: quit") + "\n")

	case stepCreate:
		b.WriteString("  " + subtitleStyle.Render("Create your first account.") + "\n\n")
		b.WriteString("  " + o.nameInput.View() + "\n")
		b.WriteString("\n" + helpStyle.Render("  enter: continue • esc: back") + "\n")

	case stepRestore:
		b.WriteString("  " + subtitleStyle.Render("Available backups") + "\n\n")
		if o.fetch == fetchLoading {
			b.WriteString("  " + o.spin.View() + subtitleStyle.Render("Fetching backups...") + "\n")
			break
		}
		if o.fetchErr != "" {
			b.WriteString("  " + errStyle.Render(o.fetchErr) + "\n")
		}
		if len(o.backups) == 0 {
			b.WriteString("  " + subtitleStyle.Render("No backups found.") + "\n")
		}
		for i, p := range o.backups {
			marker := "( )"
			if p.ID == o.selected {
				marker = "(x)"
			}
			line := fmt.Sprintf("%s %s  %d account(s)", marker, p.ID, len(p.Accounts))
			if i == o.listCursor {
				b.WriteString("  " + selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString("  " + itemStyle.Render(line) + "\n")
			}
			for _, a := range p.Accounts {
				b.WriteString("      " + subtitleStyle.Render(a.Name) + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("  space: select • enter: restore • esc: back") + "\n")
	}

	if o.notice != "" {
		b.WriteString("\n  " + errStyle.Render(o.notice) + "\n")
	}
	return b.String()
}
