// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	dberrors "dbchat/cli/internal/errors"
	"dbchat/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

var errNotInteractive = errors.New("chat needs an interactive terminal; use 'dbchat ask' instead")

// startInlineSpinner draws frames followed by text on the current line until
// the returned stop function is called. The line is erased on stop.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	cursor.Hide()
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

// withSpinner runs fn behind an inline spinner when stdout is a terminal.
func withSpinner[T any](text string, fn func() (T, error)) (T, error) {
	if !terminal.IsInteractive() {
		return fn()
	}
	stop := startInlineSpinner(os.Stdout, text, spinnerFrames, 120*time.Millisecond)
	v, err := fn()
	stop()
	return v, err
}

// report prints err for the user. Local input problems get a one-line
// warning; service failures get network guidance.
func (e *env) report(err error, context string) error {
	if err == nil {
		return nil
	}
	if dberrors.IsKind(err, dberrors.Validation) || dberrors.IsKind(err, dberrors.Readiness) {
		pterm.Warning.Println(dberrors.Message(err))
		return err
	}
	return e.serviceError(err, context)
}

// prompt reads a line, or returns preset when it is already set.
func prompt(preset, text string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	v, err := terminal.ReadLine(text)
	if err != nil {
		return "", err
	}
	if terminal.IsInteractive() {
		terminal.ClearPreviousLines(len(text) + len(v))
	}
	return v, nil
}
