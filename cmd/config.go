// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbchat/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		c, err := config.Load()
		if err != nil {
			return err
		}
		pterm.Printf("Config file: %s\n\n", p)
		data := pterm.TableData{
			{"Setting", "Value"},
			{"api_url", c.APIURL},
			{"timeout_seconds", strconv.Itoa(c.TimeoutSeconds)},
			{"page_size", strconv.Itoa(c.PageSize)},
			{"log_level", c.LogLevel},
			{"defaults.provider", orNull(c.Defaults.Provider)},
			{"defaults.model", orNull(c.Defaults.Model)},
			{"defaults.connection", orNull(c.Defaults.Connection)},
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long:  "Writes one setting to the config file. Keys: " + strings.Join(config.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.Path()
		if err != nil {
			return err
		}
		// Environment overrides are not written back.
		c, err := config.LoadFile(p)
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		pterm.Success.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}
