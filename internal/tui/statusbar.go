package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
)

type statusInfo struct {
	articles   int
	done       int
	todos      int
	fromCache  bool
	cacheLeft  int
	searching  bool
	newTask    bool
	refreshing bool
}

func renderStatusBar(info statusInfo, width int) string {
	left := fmt.Sprintf(" %d articles", info.articles)
	if info.fromCache && info.cacheLeft > 0 {
		left += fmt.Sprintf(" · cached (%dm left)", info.cacheLeft)
	}
	if info.todos > 0 {
		left += fmt.Sprintf(" · %d/%d tasks done", info.done, info.todos)
	}

	right := " / search  tab pane  r refresh  ? help  q quit "
	if info.searching {
		right = " esc cancel  ↑/↓ pick  enter open "
	}
	if info.newTask {
		right = " esc cancel  enter add "
	}
	if info.refreshing {
		left += " (refreshing...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(profile identity.Profile, hints string, width int) string {
	monoStyle := lipgloss.NewStyle().
		Foreground(colorStatusBg).
		Background(colorAccent).
		Bold(true)
	nameStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	name := profile.DisplayName
	if name == "" {
		name = "guest"
	}
	left := " " + monoStyle.Render(" "+profile.Initials()+" ") + " " + nameStyle.Render(name)
	if profile.IsGuest() {
		left += " · guest session"
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
