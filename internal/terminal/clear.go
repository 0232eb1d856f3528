// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides prompt helpers: reading lines and secrets from
// stdin and erasing prompts once they are answered.
package terminal

import (
	"math"
	"os"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// linesFor returns how many terminal rows textLength characters occupy at
// width, plus the row the cursor moved to after Enter.
func linesFor(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	n := int(math.Ceil(float64(textLength) / float64(width)))
	if n < 1 {
		n = 1
	}
	return n + 1
}

// ClearPreviousLines erases a prompt of textLength characters (prompt plus
// the user's input) that was answered with Enter.
func ClearPreviousLines(textLength int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	cursor.ClearLine()
	cursor.ClearLinesUp(linesFor(textLength, width) - 1)
	cursor.StartOfLine()
}
