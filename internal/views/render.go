package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Prompt     string
	Footer     string
	// Width is the terminal width; zero means the default layout.
	Width int
}

const (
	defaultLeftWidth  = 58
	defaultRightWidth = 44
	minPaneWidth      = 24
	// stackBelow is the terminal width under which panes are stacked.
	stackBelow = 2*minPaneWidth + 8
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

// paneWidths splits width between the task pane and the sheet pane, keeping
// the default 58/44 proportion. stacked reports a single column layout.
func paneWidths(width int) (left, right int, stacked bool) {
	if width <= 0 {
		return defaultLeftWidth, defaultRightWidth, false
	}
	if width < stackBelow {
		w := width - 2
		if w < minPaneWidth {
			w = minPaneWidth
		}
		return w, w, true
	}
	// each pane adds two border columns
	usable := width - 4
	left = usable * defaultLeftWidth / (defaultLeftWidth + defaultRightWidth)
	right = usable - left
	if right < minPaneWidth {
		right = minPaneWidth
		left = usable - right
	}
	return left, right, false
}

func RenderApp(data AppData) string {
	leftWidth, rightWidth, stacked := paneWidths(data.Width)
	left := panelStyle.Width(leftWidth).Render(data.LeftPane)
	right := panelStyle.Width(rightWidth).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if stacked {
		row = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
	}
	if data.Prompt != "" {
		lines = append(lines, promptStyle.Render(data.Prompt))
	}
	lines = append(lines, status)
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
