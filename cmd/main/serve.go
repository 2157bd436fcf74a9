package main

import (
	"github.com/UnknownOlympus/staffstore/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /healthz and /metrics until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			application.log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")
			server.StartMonitoringServer(ctx, application.log, application.registry, application.store,
				application.cfg.Server.Port)
			application.log.InfoContext(ctx, "Application stopped gracefully...")

			return nil
		},
	}
}
