package tui

import (
	"strings"
	"time"

	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
)

func dueLabel(it tasks.Item, now time.Time) string {
	if it.Done || it.DueAt.IsZero() {
		return ""
	}
	sod := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if it.DueAt.Before(sod) {
		return "overdue"
	}
	return "due today"
}

func renderTaskItem(it tasks.Item, selected, focused bool, width int) string {
	if width < 10 {
		width = 30
	}

	box := "[ ]"
	if it.Done {
		box = "[x]"
	}

	marker := "  "
	if selected {
		marker = "> "
	}

	title := truncateStr(it.Title, width-6)
	switch {
	case selected && focused:
		title = itemSelectedStyle.Render(title)
	case it.Done:
		title = taskDoneStyle.Render(title)
	default:
		title = taskTitleStyle.Render(title)
	}

	listName := it.ListName
	if listName == "" {
		listName = "personal"
	}
	meta := "      " + taskListNameStyle.Render(listName)
	if label := dueLabel(it, time.Now()); label != "" {
		meta += " " + taskDueStyle.Render("· "+label)
	}

	return marker + box + " " + title + "\n" + meta
}

func renderTaskList(items []tasks.Item, cursor, height, width int, focused bool, placeholder string) string {
	if len(items) == 0 {
		return lipglossCenter(placeholder, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderTaskItem(items[i], i == cursor, focused, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}
