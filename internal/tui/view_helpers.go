package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func joinHelp(parts []string) string {
	return strings.Join(parts, " │ ")
}

func renderPage(title, body, hotKeys string) string {
	blocks := []string{titleStyle.Render(title), boxStyle.Render(body)}
	if strings.TrimSpace(hotKeys) != "" {
		blocks = append(blocks, helpStyle.Render(hotKeys+" │ ctrl+c: quit"))
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}
