package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/gophprofile/internal/client/models"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#43BF6D")
	errorColor   = lipgloss.Color("#FF5555")
	pendingColor = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#626262")

	bannerStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(pendingColor)
	keyStyle     = lipgloss.NewStyle().Foreground(mutedColor).Width(10)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

func renderBanner(s string) string  { return bannerStyle.Render(s) }
func renderSuccess(s string) string { return successStyle.Render("✓ " + s) }
func renderError(s string) string   { return errorStyle.Render("✗ " + s) }
func renderPending(s string) string { return pendingStyle.Render("… " + s) }

// renderStatus renders the banner for a submission status.
func renderStatus(st models.SubmissionStatus) string {
	switch st.Phase {
	case models.PhaseSubmitting:
		return renderPending("Saving profile")
	case models.PhaseSucceeded:
		return renderSuccess(st.Message)
	case models.PhaseFailed:
		return renderError(st.Message)
	default:
		return ""
	}
}

// renderProfile renders the stored identity and, when it differs from the
// stored name, the name being edited.
func renderProfile(id models.Identity, editing string) string {
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(k), v)
	}

	rows := []string{
		row("ID", id.ID),
		row("Name", id.DisplayName),
		row("Email", id.Email),
	}
	if id.AvatarRef != nil {
		rows = append(rows, row("Avatar", *id.AvatarRef))
	}
	if editing != id.DisplayName {
		rows = append(rows, row("Editing", fmt.Sprintf("%q", editing)))
	}
	return boxStyle.Render(strings.Join(rows, "\n"))
}
