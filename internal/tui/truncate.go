package tui

// Truncation defaults.
const (
	DefaultMaxWidth = 30
	truncateSuffix  = "..."
	// MinMaxWidth leaves room for at least one character before the suffix.
	MinMaxWidth = len(truncateSuffix) + 1
)

// Truncate shortens s to at most maxWidth runes, ending with "..." when cut.
// A maxWidth of zero or less disables truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth < MinMaxWidth {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-len(truncateSuffix)]) + truncateSuffix
}
