// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Ask the service to generate an encryption key",
	Long: `The keygen command asks the service for freshly generated key material and
prints it as-is. Keep it somewhere safe; it is not stored by dbchat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		key, err := withSpinner("Generating key", func() (string, error) {
			return e.session.GenerateKey(cmd.Context())
		})
		if err != nil {
			return e.report(err, "generating a key")
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Generated key")).
			WithPadding(1).
			Println(key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
