package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptMore(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAccepted bool
		wantAttempts int
	}{
		{name: "lower y", input: "y\n", wantAccepted: true, wantAttempts: 1},
		{name: "upper Y", input: "Y\n", wantAccepted: true, wantAttempts: 1},
		{name: "lower n", input: "n\n", wantAccepted: false, wantAttempts: 1},
		{name: "upper N", input: "N\n", wantAccepted: false, wantAttempts: 1},
		{name: "garbage then y", input: "maybe\nyes\ny\n", wantAccepted: true, wantAttempts: 3},
		{name: "garbage then n", input: "x\nN\n", wantAccepted: false, wantAttempts: 2},
		{name: "blank lines are skipped", input: "\n\n  y\n", wantAccepted: true, wantAttempts: 1},
		{name: "EOF declines", input: "", wantAccepted: false, wantAttempts: 1},
		{name: "garbage then EOF declines", input: "what", wantAccepted: false, wantAttempts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			result, err := PromptMore(&out, NewTokenScanner(strings.NewReader(tt.input)))
			require.NoError(t, err)

			assert.Equal(t, tt.wantAccepted, result.Accepted)
			assert.Equal(t, tt.wantAttempts, result.Attempts)
			assert.Equal(t, strings.Repeat(MorePrompt, tt.wantAttempts), out.String())
		})
	}
}

func TestPromptMore_TokensShareALine(t *testing.T) {
	scanner := NewTokenScanner(strings.NewReader("y n\n"))
	var out bytes.Buffer

	first, err := PromptMore(&out, scanner)
	require.NoError(t, err)
	assert.True(t, first.Accepted)

	second, err := PromptMore(&out, scanner)
	require.NoError(t, err)
	assert.False(t, second.Accepted)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestPromptMore_ReadError(t *testing.T) {
	var out bytes.Buffer
	_, err := PromptMore(&out, NewTokenScanner(failingReader{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}
