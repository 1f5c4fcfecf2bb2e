package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/guia/internal/model"
)

const (
	EmptyTasksPlaceholder = "(no tasks yet)"
	EmptySheetPlaceholder = "(no sheet linked)"
)

type TaskItemData struct {
	Position  int
	ID        int64
	Text      string
	Completed bool
}

type TaskListData struct {
	Items     []TaskItemData
	Cursor    int
	ShowIDs   bool
	InputView string
	Plain     bool
}

type SheetMode string

const (
	SheetModeEmpty   SheetMode = "empty"
	SheetModeLink    SheetMode = "link"
	SheetModeEditing SheetMode = "editing"
)

type SheetWidgetData struct {
	URL       string
	Editing   bool
	InputView string
}

// Mode reports which of the widget's mutually exclusive states is shown.
func (d SheetWidgetData) Mode() SheetMode {
	switch {
	case d.Editing:
		return SheetModeEditing
	case d.URL == "":
		return SheetModeEmpty
	default:
		return SheetModeLink
	}
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

// TaskItems projects tasks into display order with 1-based positions.
func TaskItems(tasks model.TaskList) []TaskItemData {
	sorted := tasks.Sorted()
	out := make([]TaskItemData, 0, len(sorted))
	for i, t := range sorted {
		out = append(out, TaskItemData{Position: i + 1, ID: t.ID, Text: t.Text, Completed: t.Completed})
	}
	return out
}

func RenderTaskList(data TaskListData) string {
	open, done := 0, 0
	for _, item := range data.Items {
		if item.Completed {
			done++
		} else {
			open++
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%d open, %d done):\n", open, done))
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString(EmptyTasksPlaceholder)
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		text := EscapeText(item.Text)
		if item.Completed {
			box = "[x]"
			if !data.Plain {
				text = doneStyle.Render(text)
			}
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s", cursor, item.Position, box, text))
		if data.ShowIDs {
			b.WriteString(fmt.Sprintf(" #%d", item.ID))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderSheetWidget(data SheetWidgetData) string {
	var b strings.Builder
	b.WriteString("sheet:\n")
	switch data.Mode() {
	case SheetModeEditing:
		b.WriteString("editing:\n")
		b.WriteString(data.InputView + "\n")
		b.WriteString("keys: [enter] save [esc] cancel")
	case SheetModeEmpty:
		b.WriteString(EmptySheetPlaceholder + "\n")
		b.WriteString("keys: [c] configure")
	default:
		b.WriteString("link: " + EscapeText(data.URL) + "\n")
		b.WriteString("keys: [o] open [y] copy [c] configure [X] clear")
	}
	return b.String()
}

func RenderConfirm(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return ""
	}
	return fmt.Sprintf("confirm: %s [y/N]", prompt)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}
