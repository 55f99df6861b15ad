package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvpusca/profilesync/internal/config"
	"github.com/gvpusca/profilesync/internal/server"
	"github.com/gvpusca/profilesync/internal/store"
)

var serveStatus string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a development remote store",
	Long:  "serve runs an in-memory implementation of the remote record API, so the client can be exercised without a hosted backend. Records do not survive a restart.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		initLogger(cfg.Debug)

		status := store.ParseAccountStatus(serveStatus)
		if serveStatus != "" && status == store.StatusUndetermined && serveStatus != "undetermined" {
			return fmt.Errorf("unknown status %q", serveStatus)
		}
		return server.New(status).ListenAndServe(cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveStatus, "status", "available", "account status to report (available, noAccount, restricted, temporarilyUnavailable, undetermined)")
}
