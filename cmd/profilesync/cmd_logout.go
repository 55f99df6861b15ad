package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/cache"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the active profile on this device (keeps the remote backup)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, c, err := loadDeps()
		if err != nil {
			return err
		}
		if err := cache.ClearActiveProfile(c); err != nil {
			return err
		}
		fmt.Println("Logged out. The remote backup is untouched.")
		return nil
	},
}
