// Package console provides styled terminal message formatting.
// All helpers return strings intended for stderr; stdout is reserved for
// machine-readable report output.
package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pagesmedic/pagesmedic/pkg/tty"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // bright green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // bright red
	verboseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// styled applies a style only when stderr is a terminal, so piped output
// stays free of escape sequences.
func styled(style lipgloss.Style, message string) string {
	if !tty.IsStderrTerminal() {
		return message
	}
	return style.Render(message)
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(message string) string {
	return styled(infoStyle, "ℹ "+message)
}

// FormatSuccessMessage formats a success message.
func FormatSuccessMessage(message string) string {
	return styled(successStyle, "✓ "+message)
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(message string) string {
	return styled(warningStyle, "⚠ "+message)
}

// FormatErrorMessage formats an error message.
func FormatErrorMessage(message string) string {
	return styled(errorStyle, "✗ "+message)
}

// FormatVerboseMessage formats a low-priority diagnostic message.
func FormatVerboseMessage(message string) string {
	return styled(verboseStyle, message)
}
