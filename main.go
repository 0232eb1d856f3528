// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the dbchat CLI.
package main

import (
	"dbchat/cli/cmd"
)

func main() {
	cmd.Execute()
}
