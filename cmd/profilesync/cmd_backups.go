package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List profile backups in the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, _, err := loadDeps()
		if err != nil {
			return err
		}

		profiles, err := eng.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, p := range profiles {
			fmt.Printf("%s  %d account(s)\n", p.ID, len(p.Accounts))
			for _, a := range p.Accounts {
				fmt.Printf("    %s\n", a.Name)
			}
		}
		return nil
	},
}
