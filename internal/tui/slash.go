// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"fmt"
	"strconv"
	"strings"
)

type slashSpec struct {
	name    string
	usage   string
	minArgs int
	help    string
}

var slashSpecs = []slashSpec{
	{"/providers", "/providers", 0, "list providers"},
	{"/provider", "/provider <name>", 1, "select a provider"},
	{"/models", "/models", 0, "list models of the selected provider"},
	{"/model", "/model <name>", 1, "select a model"},
	{"/connections", "/connections", 0, "list connections"},
	{"/connection", "/connection <name>", 1, "select a connection"},
	{"/info", "/info [name]", 0, "describe a connection"},
	{"/apikey", "/apikey <key>", 1, "save an API key for the selected provider"},
	{"/newconn", "/newconn <sqlite|postgresql|mysql> <name> [host] [port] [user] [password]", 2, "register a connection"},
	{"/page", "/page <n>", 1, "jump to a result page"},
	{"/next", "/next", 0, "next result page"},
	{"/prev", "/prev", 0, "previous result page"},
	{"/save", "/save <key>", 1, "save the current result"},
	{"/saved", "/saved [delete <key>]", 0, "list or delete saved queries"},
	{"/keygen", "/keygen", 0, "generate key material"},
	{"/status", "/status", 0, "show current selections"},
	{"/help", "/help", 0, "show this help"},
	{"/quit", "/quit", 0, "leave the chat"},
}

type slashCommand struct {
	name string
	args []string
}

// arg returns the i-th argument or "".
func (c slashCommand) arg(i int) string {
	if i < len(c.args) {
		return c.args[i]
	}
	return ""
}

func lookupSlash(name string) (slashSpec, bool) {
	for _, s := range slashSpecs {
		if s.name == name {
			return s, true
		}
	}
	return slashSpec{}, false
}

// parseSlash splits raw into a command and its arguments and checks the
// argument count. The error text is meant for the status line.
func parseSlash(raw string) (slashCommand, error) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return slashCommand{}, fmt.Errorf("not a command: %s", raw)
	}
	name := strings.ToLower(parts[0])
	if name == "/exit" {
		name = "/quit"
	}
	def, ok := lookupSlash(name)
	if !ok {
		return slashCommand{}, fmt.Errorf("unknown command %s, try /help", parts[0])
	}
	cmd := slashCommand{name: name, args: parts[1:]}
	if len(cmd.args) < def.minArgs {
		return slashCommand{}, fmt.Errorf("usage: %s", def.usage)
	}
	return cmd, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("usage: /page <n> with n ≥ 1")
	}
	return n, nil
}

func helpText() string {
	var b strings.Builder
	b.WriteString("enter send · ctrl+n/ctrl+p next/prev page · pgup/pgdown scroll · ctrl+c quit\n\n")
	for _, s := range slashSpecs {
		fmt.Fprintf(&b, "%-28s %s\n", s.usage, s.help)
	}
	return strings.TrimRight(b.String(), "\n")
}
