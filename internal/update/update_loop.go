package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/guia/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Confirm.Active {
			return m.handleConfirmKey(typed), nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Adding {
			return m.handleAddKey(typed)
		}
		if m.Sheet.Editing {
			return m.handleSheetEditKey(typed)
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Sheet:
			return m.startSheetEdit(), nil
		case m.Keys.Open:
			return m, m.openSheetCmd()
		case m.Keys.Copy:
			return m, m.copySheetCmd()
		case m.Keys.Clear:
			return m.requestClearSheet(), nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleTaskKey(typed), nil
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	state := m.State()
	open, done := state.Tasks.Counts()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	inputView := ""
	if m.Adding {
		inputView = m.addInput.View()
	}
	leftPane := views.RenderTaskList(views.TaskListData{
		Items:     views.TaskItems(state.Tasks),
		Cursor:    m.Cursor,
		InputView: inputView,
	})

	sheetInput := ""
	if m.Sheet.Editing {
		sheetInput = m.sheetInput.View()
	}
	rightPane := views.RenderSheetWidget(views.SheetWidgetData{
		URL:       state.Sheet.URL,
		Editing:   m.Sheet.Editing,
		InputView: sheetInput,
	})
	if m.Palette.Active {
		rightPane += "\n\n" + views.RenderCommandPalette(true, m.Palette.Input)
	}
	rightPane += m.renderHelpIfVisible()

	prompt := ""
	if m.Confirm.Active {
		prompt = views.RenderConfirm(m.Confirm.Prompt)
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("guia | %d open | %d done", open, done),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Prompt:     prompt,
		Width:      m.Width,
		Footer: fmt.Sprintf("keys: %s add | %s toggle | %s delete | %s sheet | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Toggle, m.Keys.Delete, m.Keys.Sheet, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
