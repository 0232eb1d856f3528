// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  ana@example.com \nsecond\nlast"))

	got, err := readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got)

	got, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = readLine(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLinesFor(t *testing.T) {
	tests := []struct {
		length, width, want int
	}{
		{0, 80, 2},
		{10, 80, 2},
		{80, 80, 2},
		{81, 80, 3},
		{200, 0, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, linesFor(tt.length, tt.width), "length=%d width=%d", tt.length, tt.width)
	}
}
