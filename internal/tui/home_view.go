package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
)

var asciiLogo = []string{
	`     ██╗ █████╗ ██████╗ ██╗   ██╗██╗███████╗`,
	`     ██║██╔══██╗██╔══██╗██║   ██║██║██╔════╝`,
	`     ██║███████║██████╔╝██║   ██║██║███████╗`,
	`██   ██║██╔══██║██╔══██╗╚██╗ ██╔╝██║╚════██║`,
	`╚█████╔╝██║  ██║██║  ██║ ╚████╔╝ ██║███████║`,
	` ╚════╝ ╚═╝  ╚═╝╚═╝  ╚═╝  ╚═══╝  ╚═╝╚══════╝`,
}

func renderHomeScreen(width, height int, profile identity.Profile, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)
	quoteStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string

	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")

	hello := greeting(time.Now()) + ", stranger."
	if profile.DisplayName != "" {
		hello = greeting(time.Now()) + ", " + profile.DisplayName + "."
	}
	lines = append(lines, labelStyle.Render(hello))
	if profile.Quote != "" {
		lines = append(lines, quoteStyle.Render("“"+profile.Quote+"”"))
	}
	lines = append(lines, "")
	lines = append(lines, "")

	lines = append(lines, "          "+keyStyle.Render("[enter]")+"  "+labelStyle.Render("Dashboard"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"      "+labelStyle.Render("Quit"))

	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
