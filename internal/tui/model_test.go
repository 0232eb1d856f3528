// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbchat/cli/internal/app"
	"dbchat/cli/internal/auth"
	"dbchat/cli/internal/backend/backendtest"
	"dbchat/cli/internal/config"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/query"
)

func newTestModel(t *testing.T) (Model, *backendtest.Fake) {
	t.Helper()
	be := &backendtest.Fake{
		Token:       "tok",
		Connections: []model.Connection{{ID: "1", Name: "sales", DBType: "sqlite"}},
		Providers:   []string{"openai"},
		Models:      map[string][]string{"openai": {"gpt-4o"}},
		AnswerFunc: func(_ context.Context, req model.AnswerRequest) (*model.QueryResult, error) {
			return &model.QueryResult{
				Answer:       "Two regions",
				SQL:          "SELECT region FROM orders",
				Columns:      []string{"region"},
				Preview:      []model.Row{{"region": "EU"}},
				Page:         req.Page,
				TotalPages:   2,
				TotalRecords: 2,
			}, nil
		},
	}
	s := app.New(app.Deps{API: be, Identity: &auth.Identity{}, PageSize: 1})
	s.ApplyDefaults(config.Defaults{Provider: "openai", Model: "gpt-4o", Connection: "sales"})
	return New(context.Background(), s), be
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestEnterIsBlockedWhileInFlight(t *testing.T) {
	m, be := newTestModel(t)
	require.True(t, m.inflight)

	m.input.SetValue("how many regions?")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, busyNotice, m.statusLine)
	assert.Equal(t, "how many regions?", m.input.Value())
	assert.Equal(t, 0, be.Calls("Answer"))
}

func TestAnswerFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, actionDoneMsg{status: "Ready to ask."})
	require.False(t, m.inflight)

	m.input.SetValue("how many regions?")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.inflight)
	assert.Equal(t, "", m.input.Value())

	m = update(t, m, m.askCmd("how many regions?")())
	assert.False(t, m.inflight)
	assert.False(t, m.statusErr)
	assert.Equal(t, "2 records • Page 1 of 2", m.statusLine)
	assert.True(t, m.hasGrid)
	assert.Contains(t, m.timelineText(), "Two regions")

	m = update(t, m, m.pageCmd(true)())
	assert.Equal(t, 2, m.s.Query.Page())
	assert.Equal(t, 2, m.s.Log.Len())

	m = update(t, m, m.pageCmd(true)())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusLine, "No such page")
}

func TestNotReadyShowsReason(t *testing.T) {
	m, _ := newTestModel(t)
	m.s.Options.SetConnection("")
	m = update(t, m, m.askCmd("hi")())
	assert.True(t, m.statusErr)
	assert.Equal(t, "Choose a connection.", m.statusLine)
}

func TestActionErrorGoesToStatusLine(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.s.Log.Len()
	m = update(t, m, actionDoneMsg{err: errors.New("boom")})
	assert.True(t, m.statusErr)
	assert.Equal(t, "boom", m.statusLine)
	assert.Equal(t, before, m.s.Log.Len())
}

func TestLocalSlashCommands(t *testing.T) {
	m, _ := newTestModel(t)
	m.inflight = false

	assert.Nil(t, m.handleSlash("/help"))
	assert.Equal(t, "Help", m.panelTitle)

	assert.Nil(t, m.handleSlash("/status"))
	assert.Contains(t, m.panel, "connection: sales")

	assert.Nil(t, m.handleSlash("/bogus"))
	assert.True(t, m.statusErr)
}

func TestProvidersAction(t *testing.T) {
	m, _ := newTestModel(t)
	msg := m.actionCmd(slashCommand{name: "/providers"})()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, "Providers", done.panelTitle)
	assert.Contains(t, done.panel, "• openai")
}

func TestOutcomeSupersededKeepsStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m.statusLine = "Thinking…"
	m = update(t, m, outcomeMsg{out: query.Outcome{Status: query.StatusSuperseded}})
	assert.Equal(t, "Thinking…", m.statusLine)
}
