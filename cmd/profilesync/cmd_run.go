package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/cmd/profilesync/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive client",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, c, err := loadDeps()
		if err != nil {
			return err
		}
		model := tui.NewModel(tui.Deps{Engine: eng, Cache: c})
		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if m, ok := final.(tui.Model); ok && m.FatalErr != nil {
			return m.FatalErr
		}
		return nil
	},
}
