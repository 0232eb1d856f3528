// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"dbchat/cli/internal/terminal"
	"dbchat/cli/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `The chat command opens a full-screen conversation. Type a question and press
enter; the answer, the generated SQL and a table of rows appear below. Use
ctrl+n and ctrl+p to page through the rows and /help for the slash commands
that pick providers, models and connections.

While the chat is open, logs go to dbchat.log in the XDG state directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !terminal.IsInteractive() {
			return errNotInteractive
		}
		e, err := setup(true)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}
		e.log.Info("chat started", e.log.Args("service", e.cfg.APIURL))
		return tui.Run(cmd.Context(), e.session)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
