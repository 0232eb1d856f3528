// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/query"
	"dbchat/cli/internal/render"
)

var (
	askProvider   string
	askModel      string
	askConnection string
	askPage       int
	askSaveKey    string
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask one question and print the answer",
	Long: `The ask command sends a single question and prints the answer, the
generated SQL and a preview of the rows. Provider, model and connection
default to the [defaults] section of the config file.

Use --page to fetch a later page of the same question and --save to store the
answered question under a key.`,
	Args: cobra.MinimumNArgs(1),
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
		if askProvider != "" {
			s.Options.SetProvider(askProvider)
			if e.cfg.Defaults.Provider == askProvider && askModel == "" {
				s.Options.SetModel(e.cfg.Defaults.Model)
			}
		}
		if askModel != "" {
			s.Options.SetModel(askModel)
		}
		if askConnection != "" {
			s.Options.SetConnection(askConnection)
		}

		question := strings.Join(args, " ")
		out, err := withSpinner("Thinking", func() (query.Outcome, error) {
			out := s.Ask(ctx, question)
			if out.Status == query.StatusAnswered && askPage > 1 {
				out = s.GoToPage(ctx, askPage)
			}
			return out, nil
		})
		if err != nil {
			return err
		}

		switch out.Status {
		case query.StatusAnswered:
		case query.StatusIgnored:
			pterm.Warning.Printf("Page %d does not exist. %s\n", askPage, render.PageSummary(out.Result))
			return nil
		case query.StatusNotReady:
			pterm.Warning.Println(out.Message)
			pterm.Println("   Pass --provider, --model and --connection or set [defaults] in the config file.")
			return dberrors.New(dberrors.Readiness, out.Message)
		default:
			pterm.Error.Println(out.Message)
			return dberrors.New(dberrors.Transport, out.Message)
		}

		printResult(out.Result)
		if askSaveKey != "" {
			return saveCurrent(ctx, e, askSaveKey)
		}
		return nil
	},
}

func saveCurrent(ctx context.Context, e *env, key string) error {
	notice, err := e.session.SaveCurrent(ctx, key)
	if err != nil {
		return e.report(err, "saving the query")
	}
	pterm.Success.Println(notice)
	return nil
}

// printResult writes the answer, SQL, preview table and page summary.
func printResult(res *model.QueryResult) {
	if res == nil {
		return
	}
	pterm.DefaultSection.Println("Answer")
	pterm.Println(res.Answer)

	if res.SQL != "" {
		pterm.DefaultSection.Println("SQL")
		pterm.Println(render.HighlightSQL(res.SQL))
	}

	if data := render.TableData(res); data != nil {
		pterm.DefaultSection.Println("Preview")
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
			pterm.Error.Println(err)
		}
	}
	pterm.Println(pterm.Gray(render.PageSummary(res)))
}

func init() {
	rootCmd.AddCommand(askCmd)
	f := askCmd.Flags()
	f.StringVarP(&askProvider, "provider", "p", "", "Language-model provider")
	f.StringVarP(&askModel, "model", "m", "", "Model of the provider")
	f.StringVarP(&askConnection, "connection", "c", "", "Connection to query")
	f.IntVar(&askPage, "page", 1, "Result page to show")
	f.StringVar(&askSaveKey, "save", "", "Save the answered question under this key")
}
