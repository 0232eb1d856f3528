// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the logged-in account after checking the credential with
// the service.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show current authenticated account",
	Long: `The whoami command shows the account you are logged in as and the service
it talks to. The stored credential is checked with the service; a rejected
credential is removed. When the service cannot be reached the locally stored
account is shown.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.requireLogin() {
			return nil
		}
		account, ok, err := e.session.WhoAmI(cmd.Context())
		if !ok && err != nil {
			return err
		}
		if !ok {
			pterm.Println("🔒 Your session has expired.")
			pterm.Println("   Run 'dbchat login' to log in again.")
			return nil
		}
		pterm.Printf("👤 Current user: %s\n", account)
		pterm.Printf("   Service: %s\n", e.cfg.APIURL)
		if err != nil {
			pterm.Warning.Printf("Could not reach %s to verify the credential.\n", e.host)
			e.log.Debug("whoami check failed", e.log.Args("error", err.Error()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
