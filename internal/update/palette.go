package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/guia/internal/commands"
	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/session"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	cmd := typeInto(&m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, added, err := m.session.AddTask(m.ctx, a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			if !added {
				return commands.Result{Message: "nothing to add"}, nil
			}
			m.followTask(task.ID)
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Text)}, nil
		},
		Toggle: func(a commands.TaskArgs) (commands.Result, error) {
			id, err := commands.TargetID(m.State().Tasks, a.Ref)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			task, ok := m.State().Tasks.Find(id)
			if !ok {
				return commands.Result{Message: "nothing changed"}, nil
			}
			if err := m.session.ToggleTask(m.ctx, id); err != nil {
				return commands.Result{}, err
			}
			m.followTask(id)
			return commands.Result{Message: fmt.Sprintf("toggled: %s", task.Text)}, nil
		},
		Delete: func(a commands.TaskArgs) (commands.Result, error) {
			id, err := commands.TargetID(m.State().Tasks, a.Ref)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if _, ok := m.State().Tasks.Find(id); !ok {
				return commands.Result{Message: "nothing changed"}, nil
			}
			m = m.requestConfirm(session.PromptDeleteTask, model.DeleteTask(id))
			return commands.Result{Message: m.Status.Text}, nil
		},
		Sheet: func(a commands.SheetArgs) (commands.Result, error) {
			if a.Clear {
				m = m.requestClearSheet()
				return commands.Result{Message: m.Status.Text}, nil
			}
			if err := m.session.SetSheetURL(m.ctx, a.URL); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "sheet link saved"}, nil
		},
		Open: func() (commands.Result, error) {
			follow = m.openSheetCmd()
			return commands.Result{Message: "opening sheet link"}, nil
		},
	})
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}
