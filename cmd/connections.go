// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbchat/cli/internal/model"
	"dbchat/cli/internal/render"
	"dbchat/cli/internal/session"
	"dbchat/cli/internal/terminal"
)

var (
	newConn         model.NewConnection
	askConnPassword bool
)

var connectionsCmd = &cobra.Command{
	Use:     "connections",
	Aliases: []string{"conn"},
	Short:   "Manage database connections registered with the service",
}

var connectionsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List connections",
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
		if _, err := withSpinner("Loading connections", func() (struct{}, error) {
			return struct{}{}, s.Catalog.RefreshConnections(cmd.Context(), s.Options)
		}); err != nil {
			return e.report(err, "loading connections")
		}
		conns := s.Catalog.Connections()
		if len(conns) == 0 {
			pterm.Println("No connections yet. Add one with 'dbchat connections add'.")
			return nil
		}
		current := s.Options.Snapshot().Connection
		data := pterm.TableData{{"", "Name", "Type", "ID"}}
		for _, c := range conns {
			mark := ""
			if c.Name == current {
				mark = "•"
			}
			data = append(data, []string{mark, c.Name, c.DBType, orNull(c.ID)})
		}
		return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
	},
}

var connectionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a database connection",
	Long: `Registers a connection with the service. Type and name are required; host,
port, user and password are forwarded when given.

Supported types: ` + strings.Join(session.DBTypes, ", "),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		defer e.Close()
		if !e.requireLogin() {
			return nil
		}

		nc := newConn
		if nc.DBType, err = prompt(nc.DBType, "DB type ("+strings.Join(session.DBTypes, "/")+"): "); err != nil {
			return err
		}
		if nc.Name, err = prompt(nc.Name, "Connection name: "); err != nil {
			return err
		}
		if askConnPassword {
			if nc.Password, err = terminal.ReadSecret("DB password: "); err != nil {
				return err
			}
		}

		notice, err := withSpinner("Saving connection", func() (string, error) {
			return e.session.SaveConnection(cmd.Context(), nc)
		})
		if err != nil {
			return e.report(err, "saving the connection")
		}
		pterm.Success.Println(notice)
		return nil
	},
}

var connectionsInfoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Describe a connection",
	Long: `Shows what the service knows about a connection, such as its tables. Without
a name the default connection from the config file is described.`,
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

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		info, err := withSpinner("Loading connection info", func() ([]byte, error) {
			return e.session.ConnectionInfo(cmd.Context(), name)
		})
		if err != nil {
			return e.report(err, "loading connection info")
		}
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(e.session.Options.Snapshot().DBInfoName)).
			WithPadding(1).
			Println(render.IndentJSON(info))
		return nil
	},
}

func orNull(s string) string {
	if s == "" {
		return render.Null
	}
	return s
}

func init() {
	rootCmd.AddCommand(connectionsCmd)
	connectionsCmd.AddCommand(connectionsListCmd, connectionsAddCmd, connectionsInfoCmd)

	f := connectionsAddCmd.Flags()
	f.StringVar(&newConn.DBType, "type", "", "Database type")
	f.StringVar(&newConn.Name, "name", "", "Connection name")
	f.StringVar(&newConn.Host, "host", "", "Database host")
	f.IntVar(&newConn.Port, "port", 0, "Database port")
	f.StringVar(&newConn.User, "user", "", "Database user")
	f.BoolVar(&askConnPassword, "password", false, "Prompt for the database password")
}
