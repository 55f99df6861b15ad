package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/cache"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active profile locally and remotely",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, c, err := loadDeps()
		if err != nil {
			return err
		}

		p, found, err := cache.ReadActiveProfile(c)
		if err != nil {
			return fmt.Errorf("local cache is corrupted: %w", err)
		}
		if !found {
			return fmt.Errorf("no active profile on this device")
		}

		if !deleteForce {
			var confirmed bool
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Delete profile %s everywhere?", p.ID)).
				Description("This removes the local copy and the remote backup.").
				Value(&confirmed)
			if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		// Local copy goes first; the remote delete may fail and be retried.
		if err := cache.ClearActiveProfile(c); err != nil {
			return err
		}
		if err := eng.Delete(cmd.Context(), p.ID); err != nil {
			return fmt.Errorf("local copy removed, but remote delete failed: %w", err)
		}
		fmt.Printf("Deleted %s\n", p.ID)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}
