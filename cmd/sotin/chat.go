package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sotinhq/sotin/internal/agent"
	"github.com/sotinhq/sotin/memory"
	"github.com/sotinhq/sotin/models"
)

func chatCMD() *cobra.Command {
	var cfgPath string
	var userID string
	chat := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cfgPath)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			sessionID := uuid.NewString()
			fmt.Fprintf(cmd.OutOrStdout(), "session %s (type exit to quit)\n", sessionID)

			sc := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "> ")
				if !sc.Scan() {
					break
				}
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				if line == "exit" {
					break
				}

				a.turns.SaveTurn(userID, sessionID, models.RoleUser, line)
				recent := a.turns.Recent(userID, sessionID, a.cfg.Memory.ContextTurns)

				out, err := a.agent.Run(cmd.Context(), agent.Request{
					UserID:        userID,
					SessionID:     sessionID,
					Message:       line,
					PromptContext: memory.BuildChatContext(recent, line, a.cfg.Memory.ContextTurns),
					HistoryJSON:   memory.HistoryJSON(a.answers.History(userID, sessionID), a.cfg.Memory.HistoryItems),
				})
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					continue
				}

				a.answers.Append(userID, sessionID, out)
				a.turns.SaveTurn(userID, sessionID, models.RoleAssistant, out.FinalAnswer)

				fmt.Fprintln(cmd.OutOrStdout(), out.FinalAnswer)
				for _, cit := range out.Citations {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", cit.URL)
				}
			}
			return sc.Err()
		},
	}
	chat.Flags().StringVar(&userID, "user", "cli", "user id scoping the session memory")
	chat.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default searches . and ./config)")

	return chat
}
