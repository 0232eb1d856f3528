// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tui is the full-screen chat for dbchat. It drives an app.Session;
// every call to the service runs in a tea.Cmd and reports back as a message,
// and only one runs at a time.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"dbchat/cli/internal/app"
	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/model"
	"dbchat/cli/internal/query"
	"dbchat/cli/internal/render"
)

const busyNotice = "Still waiting for the previous request."

// outcomeMsg reports a finished question or page request.
type outcomeMsg struct {
	out query.Outcome
}

// actionDoneMsg reports any other finished action. panel, when set, replaces
// the side panel content.
type actionDoneMsg struct {
	status     string
	panelTitle string
	panel      string
	err        error
}

type Model struct {
	ctx context.Context
	s   *app.Session

	input    textinput.Model
	timeline viewport.Model
	spinner  spinner.Model
	theme    theme

	grid    bbtable.Model
	hasGrid bool

	width  int
	height int

	inflight   bool
	statusLine string
	statusErr  bool
	panelTitle string
	panel      string
}

// New builds the chat model for s. ctx bounds every service call.
func New(ctx context.Context, s *app.Session) Model {
	in := textinput.New()
	in.Prompt = "❯ "
	in.Placeholder = "Ask a question or type /help"
	in.CharLimit = 2000
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points

	tl := viewport.New(0, 0)
	tl.MouseWheelEnabled = true

	m := Model{
		ctx:        ctx,
		s:          s,
		input:      in,
		timeline:   tl,
		spinner:    sp,
		theme:      newTheme(),
		statusLine: "Loading catalogs…",
		inflight:   true,
	}
	m.renderTimeline()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, s *app.Session) error {
	p := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.loadCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case outcomeMsg:
		m.inflight = false
		m.applyOutcome(msg.out)
	case actionDoneMsg:
		m.inflight = false
		if msg.err != nil {
			m.setError(dberrors.Message(msg.err))
		} else if msg.status != "" {
			m.setStatus(msg.status)
		}
		if msg.panel != "" {
			m.panelTitle = msg.panelTitle
			m.panel = msg.panel
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderTimeline()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.inflight {
			m.renderTimeline()
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, tea.Batch(cmds...)
			}
			if m.inflight {
				m.setStatus(busyNotice)
				return m, tea.Batch(cmds...)
			}
			m.input.SetValue("")
			if strings.HasPrefix(raw, "/") {
				cmds = append(cmds, m.handleSlash(raw))
				return m, tea.Batch(cmds...)
			}
			m.inflight = true
			m.setStatus("Thinking…")
			cmds = append(cmds, m.askCmd(raw))
			return m, tea.Batch(cmds...)
		case "ctrl+n", "ctrl+p":
			if m.inflight {
				m.setStatus(busyNotice)
				return m, tea.Batch(cmds...)
			}
			m.inflight = true
			cmds = append(cmds, m.pageCmd(msg.String() == "ctrl+n"))
			return m, tea.Batch(cmds...)
		case "pgup", "ctrl+b":
			m.timeline.LineUp(8)
			return m, tea.Batch(cmds...)
		case "pgdown", "ctrl+f":
			m.timeline.LineDown(8)
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setStatus(s string) {
	m.statusLine = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusLine = s
	m.statusErr = true
}

func (m *Model) applyOutcome(out query.Outcome) {
	switch out.Status {
	case query.StatusAnswered:
		m.setStatus(render.PageSummary(out.Result))
	case query.StatusIgnored:
		if out.Result == nil {
			m.setError("No result to page through yet.")
		} else {
			m.setError(fmt.Sprintf("No such page. %s", render.PageSummary(out.Result)))
		}
	case query.StatusSuperseded:
	default:
		m.setError(out.Message)
	}
	m.grid, m.hasGrid = resultGrid(m.s.Query.Result())
	m.renderTimeline()
}

func (m *Model) resize() {
	contentWidth := max(40, m.width-4)
	m.input.Width = max(20, contentWidth-6)
	m.timeline.Width = contentWidth - 2
	// header 3, input 3, status 1, panel borders
	m.timeline.Height = max(4, (m.height-9)/2)
}

func (m *Model) renderTimeline() {
	m.timeline.SetContent(m.timelineText())
	m.timeline.GotoBottom()
}

func (m *Model) timelineText() string {
	entries := m.s.Log.Entries()
	if len(entries) == 0 {
		return m.theme.helpText.Render("No messages yet. Ask a question about your database.")
	}
	width := max(24, m.timeline.Width-2)
	var b strings.Builder
	for _, e := range entries {
		if e.Role == model.RoleUser {
			b.WriteString(m.theme.user.Render("you"))
		} else {
			b.WriteString(m.theme.assistant.Render("dbchat"))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(e.Text))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) handleSlash(raw string) tea.Cmd {
	c, err := parseSlash(raw)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	ctx := m.ctx
	s := m.s

	switch c.name {
	case "/help":
		m.panelTitle, m.panel = "Help", helpText()
		return nil
	case "/quit":
		return tea.Quit
	case "/status":
		m.panelTitle, m.panel = "Session", m.statusText()
		return nil
	case "/model":
		if err := s.SelectModel(c.arg(0)); err != nil {
			m.setError(dberrors.Message(err))
			return nil
		}
		m.setStatus("Model: " + s.Options.Snapshot().Model)
		return nil
	case "/connection":
		if err := s.SelectConnection(c.arg(0)); err != nil {
			m.setError(dberrors.Message(err))
			return nil
		}
		m.setStatus("Connection: " + s.Options.Snapshot().Connection)
		return nil
	case "/page":
		n, err := parsePage(c.arg(0))
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		m.inflight = true
		return func() tea.Msg { return outcomeMsg{out: s.GoToPage(ctx, n)} }
	case "/next":
		m.inflight = true
		return m.pageCmd(true)
	case "/prev":
		m.inflight = true
		return m.pageCmd(false)
	}

	m.inflight = true
	m.setStatus("Working…")
	return m.actionCmd(c)
}

// actionCmd runs the slash commands that call the service.
func (m *Model) actionCmd(c slashCommand) tea.Cmd {
	ctx := m.ctx
	s := m.s
	return func() tea.Msg {
		switch c.name {
		case "/providers":
			if err := s.Catalog.RefreshProviders(ctx); err != nil {
				return actionDoneMsg{err: err}
			}
			return listMsg("Providers", s.Catalog.Providers(), s.Options.Snapshot().Provider)
		case "/provider":
			if err := s.SelectProvider(ctx, c.arg(0)); err != nil {
				return actionDoneMsg{err: err}
			}
			models, _ := s.Catalog.Models()
			msg := listMsg("Models", models, "")
			msg.status = "Provider: " + s.Options.Snapshot().Provider + ". Choose a model with /model."
			return msg
		case "/models":
			provider := s.Options.Snapshot().Provider
			if provider == "" {
				return actionDoneMsg{err: dberrors.New(dberrors.Validation, app.MsgNeedProvider)}
			}
			if err := s.Catalog.RefreshModels(ctx, provider); err != nil {
				return actionDoneMsg{err: err}
			}
			models, _ := s.Catalog.Models()
			return listMsg("Models", models, s.Options.Snapshot().Model)
		case "/connections":
			if err := s.Catalog.RefreshConnections(ctx, s.Options); err != nil {
				return actionDoneMsg{err: err}
			}
			names := make([]string, 0)
			for _, conn := range s.Catalog.Connections() {
				names = append(names, conn.Name+" ("+conn.DBType+")")
			}
			return listMsg("Connections", names, "")
		case "/info":
			info, err := s.ConnectionInfo(ctx, c.arg(0))
			if err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{panelTitle: "Connection " + s.Options.Snapshot().DBInfoName, panel: render.IndentJSON(info)}
		case "/apikey":
			s.Options.SetAPIKeyInput(c.arg(0))
			notice, err := s.SaveAPIKey(ctx)
			return actionDoneMsg{status: notice, err: err}
		case "/newconn":
			nc := model.NewConnection{
				DBType:   c.arg(0),
				Name:     c.arg(1),
				Host:     c.arg(2),
				User:     c.arg(4),
				Password: c.arg(5),
			}
			if p := c.arg(3); p != "" {
				port, err := strconv.Atoi(p)
				if err != nil {
					return actionDoneMsg{err: dberrors.New(dberrors.Validation, "Port must be a number.")}
				}
				nc.Port = port
			}
			notice, err := s.SaveConnection(ctx, nc)
			return actionDoneMsg{status: notice, err: err}
		case "/save":
			notice, err := s.SaveCurrent(ctx, c.arg(0))
			return actionDoneMsg{status: notice, err: err}
		case "/saved":
			if strings.EqualFold(c.arg(0), "delete") {
				notice, err := s.DeleteSaved(ctx, c.arg(1))
				return actionDoneMsg{status: notice, err: err}
			}
			list, err := s.ListSaved(ctx)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			lines := make([]string, 0, len(list))
			for _, q := range list {
				lines = append(lines, render.SavedLine(q))
			}
			return listMsg("Saved queries", lines, "")
		case "/keygen":
			key, err := s.GenerateKey(ctx)
			if err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Key generated.", panelTitle: "Generated key", panel: key}
		}
		return actionDoneMsg{err: fmt.Errorf("unhandled command %s", c.name)}
	}
}

func listMsg(title string, items []string, selected string) actionDoneMsg {
	if len(items) == 0 {
		return actionDoneMsg{status: "No " + strings.ToLower(title) + " found.", panelTitle: title, panel: "(none)"}
	}
	var b strings.Builder
	for _, it := range items {
		mark := "  "
		if it == selected {
			mark = "• "
		}
		b.WriteString(mark + it + "\n")
	}
	return actionDoneMsg{status: fmt.Sprintf("%d %s.", len(items), strings.ToLower(title)), panelTitle: title, panel: strings.TrimRight(b.String(), "\n")}
}

func (m Model) askCmd(question string) tea.Cmd {
	ctx, s := m.ctx, m.s
	return func() tea.Msg { return outcomeMsg{out: s.Ask(ctx, question)} }
}

func (m Model) pageCmd(next bool) tea.Cmd {
	ctx, s := m.ctx, m.s
	return func() tea.Msg {
		if next {
			return outcomeMsg{out: s.NextPage(ctx)}
		}
		return outcomeMsg{out: s.PrevPage(ctx)}
	}
}

// loadCmd fills the catalogs when the chat opens.
func (m Model) loadCmd() tea.Cmd {
	ctx, s := m.ctx, m.s
	return func() tea.Msg {
		if err := s.RefreshAfterLogin(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		if p := s.Options.Snapshot().Provider; p != "" {
			if err := s.Catalog.RefreshModels(ctx, p); err != nil {
				return actionDoneMsg{err: err}
			}
		}
		if reason := s.Options.Ready(); reason != "" {
			return actionDoneMsg{status: reason}
		}
		return actionDoneMsg{status: "Ready to ask."}
	}
}

func (m Model) statusText() string {
	v := m.s.Options.Snapshot()
	val := func(s string) string {
		if s == "" {
			return "(none)"
		}
		return s
	}
	lines := []string{
		"provider:   " + val(v.Provider),
		"model:      " + val(v.Model),
		"connection: " + val(v.Connection),
	}
	if reason := m.s.Options.Ready(); reason != "" {
		lines = append(lines, "", reason)
	} else {
		lines = append(lines, "", "Ready to ask.")
	}
	if q := m.s.Query.PendingQuestion(); q != "" {
		lines = append(lines, "last question: "+q)
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	header := m.renderHeader()
	chat := m.theme.panel.Width(max(20, m.width-4)).Render(m.timeline.View())
	parts := []string{header, chat}
	if r := m.renderResult(); r != "" {
		parts = append(parts, r)
	}
	if m.panel != "" {
		parts = append(parts, m.theme.panel.Width(max(20, m.width-4)).Render(
			m.theme.panelTitle.Render(m.panelTitle)+"\n"+m.panel))
	}
	parts = append(parts,
		m.theme.inputPanel.Width(max(20, m.width-4)).Render(m.input.View()),
		m.renderStatus(),
	)
	return m.theme.root.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHeader() string {
	v := m.s.Options.Snapshot()
	sel := fmt.Sprintf("%s / %s @ %s", orDash(v.Provider), orDash(v.Model), orDash(v.Connection))
	return m.theme.header.Width(max(20, m.width-4)).Render(
		m.theme.title.Render("dbchat") + "  " + m.theme.selection.Render(sel))
}

func (m Model) renderResult() string {
	res := m.s.Query.Result()
	if res == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("SQL"))
	b.WriteString("\n")
	b.WriteString(render.HighlightSQL(res.SQL))
	if m.hasGrid {
		b.WriteString("\n")
		b.WriteString(m.grid.View())
	}
	b.WriteString("\n")
	b.WriteString(m.theme.summary.Render(render.PageSummary(res) + "  (ctrl+p / ctrl+n)"))
	return m.theme.panel.Width(max(20, m.width-4)).Render(b.String())
}

func (m Model) renderStatus() string {
	line := m.statusLine
	if m.inflight {
		line = m.spinner.View() + " " + line
	}
	if m.statusErr {
		return m.theme.errorStatus.Render(line)
	}
	return m.theme.status.Render(line)
}

func orDash(s string) string {
	if s == "" {
		return render.Null
	}
	return s
}
