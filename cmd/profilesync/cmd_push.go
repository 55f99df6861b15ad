package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/cache"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the active profile to the remote store",
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

		meta, err := eng.Upsert(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Backed up %s at %s\n", p.ID, meta.Modified.Format("2006-01-02 15:04:05"))
		return nil
	},
}
