package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sotinhq/sotin/config"
	"github.com/sotinhq/sotin/internal/agent"
	"github.com/sotinhq/sotin/tools/websearch"
)

func lookupCMD() *cobra.Command {
	var cfgPath string
	lookup := &cobra.Command{
		Use:   "lookup [query...]",
		Short: "One-shot web lookup without the language model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			// Only the search provider is needed here, so the model
			// credentials are not checked.
			if err := cfg.Search.Validate(); err != nil {
				return err
			}
			searcher, err := websearch.NewWebSearcher(websearch.Provider(cfg.Search.Provider), cfg.Search.APIKey)
			if err != nil {
				return err
			}

			out, err := agent.Lookup(cmd.Context(), searcher, strings.Join(args, " "),
				agent.WithMaxSources(cfg.Search.MaxResults))
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	lookup.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default searches . and ./config)")

	return lookup
}
