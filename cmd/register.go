// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbchat/cli/internal/model"
	"dbchat/cli/internal/terminal"
)

var (
	registerName  string
	registerEmail string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		name, err := prompt(registerName, "Name: ")
		if err != nil {
			return err
		}
		email, err := prompt(registerEmail, "Email: ")
		if err != nil {
			return err
		}
		password, err := terminal.ReadSecret("Password: ")
		if err != nil {
			return err
		}

		notice, err := withSpinner("Creating account", func() (string, error) {
			return e.session.Register(cmd.Context(), model.Account{Name: name, Email: email, Password: password})
		})
		if err != nil {
			return e.report(err, "registering")
		}
		pterm.Success.Println(notice)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address, also the login username")
}
