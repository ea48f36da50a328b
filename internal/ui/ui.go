package ui

// Raw ANSI codes for the batch logger's prefix coloring. Styled command
// output goes through the lipgloss styles in styles.go; these exist so the
// logger can color a prefix without pulling a style renderer into hot
// per-file logging.
const (
	Reset  = "\033[0m"
	FgCyan = "\033[36m"
	// FgGreen marks success prefixes.
	FgGreen = "\033[32m"
)

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	return code + s + Reset
}
