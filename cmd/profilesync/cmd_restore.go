package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/profile"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <profile-id>",
	Short: "Fetch a remote backup and make it the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, c, err := loadDeps()
		if err != nil {
			return err
		}

		id := profile.ProfileID(args[0])
		p, _, found := eng.FetchOne(cmd.Context(), id)
		if !found {
			return fmt.Errorf("no readable backup for %s", id)
		}

		if err := cache.WriteActiveProfile(c, p); err != nil {
			return err
		}
		fmt.Printf("Restored %s (%d account(s))\n", p.ID, len(p.Accounts))
		return nil
	},
}
