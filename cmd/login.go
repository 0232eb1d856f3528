// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbchat/cli/internal/terminal"
)

var loginUser string

// loginCmd exchanges username and password for a bearer credential and
// stores it in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Log in with username and password",
	Long: `The login command asks for your username and password and exchanges them
for an access token. The token is stored in the OS keychain and used by every
other command until you run 'dbchat logout'.

The password is read without echo. When stdin is not a terminal it is read as
a plain line so it can be piped in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if e.session.LoggedIn() {
			if account, ok, err := e.session.WhoAmI(ctx); err == nil && ok {
				pterm.Printf("Already logged in as %s\n", account)
				return nil
			}
		}

		user, err := prompt(loginUser, "Username: ")
		if err != nil {
			return err
		}
		password, err := terminal.ReadSecret("Password: ")
		if err != nil {
			return err
		}

		notice, err := withSpinner("Logging in", func() (string, error) {
			return e.session.Login(ctx, user, password)
		})
		if err != nil {
			return e.report(err, "logging in")
		}
		pterm.Success.Println(notice)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "Username (prompted when empty)")
}
