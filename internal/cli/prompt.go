package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MorePrompt is shown after every full page.
const MorePrompt = "Do you want to see more? (Y/N): "

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user typed "y" or "Y".
	Accepted bool
	// Attempts counts how many times the prompt was shown.
	Attempts int
}

// NewTokenScanner wraps r in a scanner that yields one whitespace-separated
// token per Scan, so "y n" on one line answers two prompts.
func NewTokenScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return scanner
}

// PromptMore asks whether to show another page and blocks until it reads
// "y" or "n" in any case. Any other token re-prompts. End of input declines.
func PromptMore(writer io.Writer, scanner *bufio.Scanner) (PromptResult, error) {
	var result PromptResult
	for {
		result.Attempts++
		if _, err := fmt.Fprint(writer, MorePrompt); err != nil {
			return result, err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return result, fmt.Errorf("reading answer: %w", err)
			}
			// EOF without error - treat as decline (user pressed Ctrl+D)
			return result, nil
		}

		switch strings.ToLower(scanner.Text()) {
		case "y":
			result.Accepted = true
			return result, nil
		case "n":
			return result, nil
		}
	}
}
