package main

import (
	"github.com/spf13/cobra"

	"github.com/sotinhq/sotin/internal/server"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			return server.New(a.cfg, a.logger, a.agent, a.turns, a.answers).Start()
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default searches . and ./config)")

	return serve
}
