// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbchat/cli/internal/model"
	"dbchat/cli/internal/render"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved queries",
}

var savedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}

		list, err := withSpinner("Loading saved queries", func() ([]model.SavedQuery, error) {
			return e.session.ListSaved(cmd.Context())
		})
		if err != nil {
			return e.report(err, "loading saved queries")
		}
		lines := make([]string, 0, len(list))
		for _, q := range list {
			lines = append(lines, render.SavedLine(q))
		}
		printList("Saved queries", lines, "")
		return nil
	},
}

var savedDeleteCmd = &cobra.Command{
	Use:     "delete <key>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved query",
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

		msg, err := e.session.DeleteSaved(cmd.Context(), args[0])
		if err != nil {
			return e.report(err, "deleting the saved query")
		}
		pterm.Success.Println(msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd, savedDeleteCmd)
}
