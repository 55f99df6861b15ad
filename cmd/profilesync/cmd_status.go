package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/cache"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show remote account status and the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, c, err := loadDeps()
		if err != nil {
			return err
		}

		status := eng.CheckStatus(cmd.Context())
		fmt.Printf("Account status: %s\n", status)

		p, found, err := cache.ReadActiveProfile(c)
		if err != nil {
			return fmt.Errorf("local cache is corrupted: %w", err)
		}
		if !found {
			fmt.Println("No active profile on this device. Run `profilesync run` to onboard.")
			return nil
		}

		fmt.Printf("Active profile: %s (%d account(s))\n", p.ID, len(p.Accounts))
		if _, meta, ok := eng.FetchOne(cmd.Context(), p.ID); ok {
			fmt.Printf("Last backup:    %s\n", meta.Modified.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Println("Last backup:    --")
		}
		return nil
	},
}
