// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/terminal"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage language-model API keys stored by the service",
}

var apikeySetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Save the API key for a provider",
	Long: `Stores an API key for the given provider with the service. The key is read
without echo. Models of the provider are listed once the key is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}

		ctx := cmd.Context()
		s := e.session
		if err := s.Catalog.RefreshProviders(ctx); err != nil {
			return e.report(err, "loading providers")
		}
		// Models may only be listable once a key exists.
		if err := s.SelectProvider(ctx, args[0]); dberrors.IsKind(err, dberrors.Validation) {
			return e.report(err, "selecting the provider")
		}

		key, err := terminal.ReadSecret("API key: ")
		if err != nil {
			return err
		}
		s.Options.SetAPIKeyInput(key)
		notice, err := withSpinner("Saving API key", func() (string, error) {
			return s.SaveAPIKey(ctx)
		})
		if err != nil {
			return e.report(err, "saving the API key")
		}
		pterm.Success.Println(notice)
		if models, _ := s.Catalog.Models(); len(models) > 0 {
			printList("Models", models, "")
		}
		return nil
	},
}

var apikeyDeleteCmd = &cobra.Command{
	Use:     "delete <provider>",
	Aliases: []string{"rm"},
	Short:   "Remove the API key for a provider",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}
		notice, err := e.session.DeleteAPIKey(cmd.Context(), args[0])
		if err != nil {
			return e.report(err, "removing the API key")
		}
		pterm.Success.Println(notice)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(apikeyCmd)
	apikeyCmd.AddCommand(apikeySetCmd, apikeyDeleteCmd)
}
