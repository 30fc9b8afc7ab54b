package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func publishedLabel(a newscache.Article) string {
	t, ok := a.PublishedTime()
	if !ok {
		return ""
	}
	return relativeTime(t)
}

func renderNewsItem(a newscache.Article, selected, focused bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	switch {
	case selected && focused:
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-4))
	case selected:
		title = itemTitleStyle.Render("> " + truncateStr(a.Title, width-4))
	default:
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(a.Source.Name)
	if label := publishedLabel(a); label != "" {
		meta += " " + itemTimeStyle.Render("· "+label)
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// renderNewsList draws the scrolling headline window with the selected
// article's detail pinned below it.
func renderNewsList(articles []newscache.Article, cursor, height, width int, focused bool, placeholder string) string {
	if len(articles) == 0 {
		return lipglossCenter(placeholder, width, height)
	}

	detailHeight := 6
	listHeight := height - detailHeight
	if listHeight < 3 {
		detailHeight = 0
		listHeight = height
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := listHeight / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderNewsItem(articles[i], i == cursor, focused, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	if detailHeight > 0 && cursor < len(articles) {
		b.WriteString("\n")
		b.WriteString(renderNewsDetail(articles[cursor], width))
	}

	return b.String()
}

func renderNewsDetail(a newscache.Article, width int) string {
	if width < 10 {
		width = 30
	}

	sep := itemTimeStyle.Render(strings.Repeat("─", width))

	desc := a.Description
	if desc == "" {
		desc = "(No description available)"
	}
	body := itemBodyStyle.Render(firstLines(wrapText(desc, width), 3))
	link := itemLinkStyle.Render(truncateStr("Read more: "+a.URL, width))

	return sep + "\n" + body + "\n" + link
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
