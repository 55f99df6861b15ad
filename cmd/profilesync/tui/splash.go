package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gvpusca/profilesync/internal/cache"
)

// Splash is the initial screen. Its only job is to read the local
// cache and report whether a profile is resident on this device.
type Splash struct {
	deps Deps
	spin spinner.Model
}

// NewSplash creates the splash screen model.
func NewSplash(deps Deps) Splash {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Splash{deps: deps, spin: sp}
}

// readCacheCmd reads the active profile from the local cache.
func readCacheCmd(c cache.Cache) tea.Cmd {
	return func() tea.Msg {
		p, found, err := cache.ReadActiveProfile(c)
		return LocalProfileMsg{Profile: p, Found: found, Err: err}
	}
}

func (s Splash) Init() tea.Cmd {
	return tea.Batch(s.spin.Tick, readCacheCmd(s.deps.Cache))
}

func (s Splash) Update(msg tea.Msg) (Splash, tea.Cmd) {
	var cmd tea.Cmd
	s.spin, cmd = s.spin.Update(msg)
	return s, cmd
}

func (s Splash) View() string {
	return "\n  " + s.spin.View() + subtitleStyle.Render("Loading profile...") + "\n"
}
