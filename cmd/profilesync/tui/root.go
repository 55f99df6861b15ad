// Package tui implements the interactive client as a set of bubbletea
// models: a root navigation model and one sub-model per screen. Each
// Update is a pure (state, event) -> (state, commands) step; async
// store work runs in commands whose results come back as messages, and
// the root drops results addressed to a screen that is no longer
// active, so stale completions can never corrupt the current screen.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/engine"
	"github.com/gvpusca/profilesync/internal/profile"
)

// Deps are the store collaborators injected into every flow.
type Deps struct {
	Engine *engine.Engine
	Cache  cache.Cache
}

// Destination identifies the active screen.
type Destination int

const (
	DestSplash Destination = iota
	DestOnboarding
	DestProfileHome
)

// Model is the root navigation state machine.
type Model struct {
	deps Deps
	dest Destination

	splash     Splash
	onboarding Onboarding
	home       ProfileHome

	width, height int
	quitting      bool

	// FatalErr is set when the cached profile exists but cannot be
	// decoded: corrupted device state with no recovery path.
	FatalErr error
}

// NewModel creates the root model at the splash screen.
func NewModel(deps Deps) Model {
	return Model{deps: deps, splash: NewSplash(deps)}
}

// Dest reports the active screen.
func (m Model) Dest() Destination { return m.dest }

// ActiveProfile returns the profile held by the profile screen.
func (m Model) ActiveProfile() profile.Profile { return m.home.profile }

func (m Model) Init() tea.Cmd {
	return m.splash.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case LocalProfileMsg:
		if m.dest != DestSplash {
			return m, nil
		}
		if msg.Err != nil {
			m.FatalErr = msg.Err
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Found {
			return m.toProfileHome(msg.Profile)
		}
		m.dest = DestOnboarding
		m.onboarding = NewOnboarding(m.deps)
		return m, m.onboarding.Init()

	case OnboardingDoneMsg:
		if m.dest != DestOnboarding {
			return m, nil
		}
		return m.toProfileHome(msg.Profile)

	case LogoutMsg:
		if m.dest != DestProfileHome {
			return m, nil
		}
		return m.toOnboarding()

	case DeleteDoneMsg:
		if m.dest != DestProfileHome {
			return m, nil
		}
		if msg.Err == nil {
			return m.toOnboarding()
		}
		// Remote delete failed: stay put, let the screen show it.
	}

	// Everything else belongs to the active screen. Results for any
	// other screen fall through its type switch as no-ops.
	var cmd tea.Cmd
	switch m.dest {
	case DestSplash:
		m.splash, cmd = m.splash.Update(msg)
	case DestOnboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case DestProfileHome:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

func (m Model) toProfileHome(p profile.Profile) (Model, tea.Cmd) {
	m.dest = DestProfileHome
	m.home = NewProfileHome(m.deps, p)
	return m, m.home.Init()
}

func (m Model) toOnboarding() (Model, tea.Cmd) {
	m.dest = DestOnboarding
	m.onboarding = NewOnboarding(m.deps)
	return m, m.onboarding.Init()
}

func (m Model) View() string {
	if m.quitting {
		if m.FatalErr != nil {
			return errStyle.Render(fmt.Sprintf("fatal: %v", m.FatalErr)) + "\n"
		}
		return ""
	}
	switch m.dest {
	case DestOnboarding:
		return m.onboarding.View()
	case DestProfileHome:
		return m.home.View()
	default:
		return m.splash.View()
	}
}
