package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/session"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Add, "i":
		m.Adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.AddInput = ""
		m.Status = StatusBar{Text: "new task"}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.State().Tasks)-1 {
			m.Cursor++
		}
	case " ", m.Keys.Toggle:
		m.toggleSelected()
	case m.Keys.Delete:
		task, ok := m.selectedTask()
		if !ok {
			return m
		}
		m = m.requestConfirm(session.PromptDeleteTask, model.DeleteTask(task.ID))
	}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.AddInput = ""
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "enter":
		m.submitAdd(m.addInput.Value())
		m.addInput.SetValue("")
		m.AddInput = ""
		return m, nil
	}
	cmd := typeInto(&m.addInput, msg)
	m.AddInput = m.addInput.Value()
	return m, cmd
}

// submitAdd keeps the input open so several tasks can be entered in a row.
func (m *Model) submitAdd(text string) {
	task, added, err := m.session.AddTask(m.ctx, text)
	if err != nil {
		m.fail(err)
		return
	}
	if !added {
		return
	}
	m.followTask(task.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if err := m.session.ToggleTask(m.ctx, task.ID); err != nil {
		m.fail(err)
		return
	}
	m.followTask(task.ID)
	if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Text)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Text)}
	}
}
