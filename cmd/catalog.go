// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// printList prints items as a bullet list under title, marking selected.
func printList(title string, items []string, selected string) {
	pterm.DefaultSection.Println(title)
	if len(items) == 0 {
		pterm.Println("  (none)")
		return
	}
	bullets := make([]pterm.BulletListItem, 0, len(items))
	for _, it := range items {
		item := pterm.BulletListItem{Level: 0, Text: it}
		if it == selected {
			item.Text = pterm.LightGreen(it) + pterm.Gray(" (default)")
		}
		bullets = append(bullets, item)
	}
	_ = pterm.DefaultBulletList.WithItems(bullets).Render()
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List language-model providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}

		s := e.session
		if _, err := withSpinner("Loading providers", func() (struct{}, error) {
			return struct{}{}, s.Catalog.RefreshProviders(cmd.Context())
		}); err != nil {
			return e.report(err, "loading providers")
		}
		printList("Providers", s.Catalog.Providers(), s.Options.Snapshot().Provider)
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List models of a provider",
	Long: `Lists the models of the given provider, or of the default provider from
the config file when none is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}

		s := e.session
		provider := s.Options.Snapshot().Provider
		if len(args) == 1 {
			provider = args[0]
		}
		if provider == "" {
			pterm.Warning.Println("Name a provider: dbchat models <provider>")
			return nil
		}
		if _, err := withSpinner("Loading models", func() (struct{}, error) {
			return struct{}{}, s.Catalog.RefreshModels(cmd.Context(), provider)
		}); err != nil {
			return e.report(err, "loading models")
		}
		models, _ := s.Catalog.Models()
		printList("Models for "+provider, models, e.cfg.Defaults.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd, modelsCmd)
}
