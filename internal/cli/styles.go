package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"any2text/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	badgeQueued  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("94")).Padding(0, 1)
	badgeRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Padding(0, 1)
	badgeDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("28")).Padding(0, 1)
	badgeError   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")).Padding(0, 1)
)

func statusBadge(status string) string {
	switch status {
	case model.StatusQueued:
		return badgeQueued.Render("queued")
	case model.StatusProcessing:
		return badgeRunning.Render("processing")
	case model.StatusDone:
		return badgeDone.Render("done")
	case model.StatusError:
		return badgeError.Render("error")
	default:
		return mutedStyle.Render(fmt.Sprintf("%q", status))
	}
}
