// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the stored credential.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved credential",
	Long: `The logout command removes the access token and auth state from the OS
keychain. The service keeps no session, so nothing is sent over the network.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.Logout(); err != nil {
			pterm.Warning.Printf("Could not clear the keychain: %v\n", err)
			return err
		}
		pterm.Println("✅ Credential removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
