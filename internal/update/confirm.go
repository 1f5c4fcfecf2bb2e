package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/guia/internal/model"
)

// requestConfirm opens the confirm modal for a, or dispatches a straight away
// when confirmations are turned off.
func (m Model) requestConfirm(prompt string, a model.Action) Model {
	if !m.ConfirmDeletes {
		m.dispatch(a)
		return m
	}
	m.Confirm = ConfirmState{Active: true, Prompt: prompt, Action: a}
	m.Status = StatusBar{Text: prompt}
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		a := m.Confirm.Action
		m.Confirm = ConfirmState{}
		m.dispatch(a)
	default:
		m.logger.Debug("confirm declined", "kind", m.Confirm.Action.Kind, "id", m.Confirm.Action.ID)
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "cancelled"}
	}
	return m
}

func (m *Model) dispatch(a model.Action) {
	changed, err := m.session.Dispatch(m.ctx, a)
	if err != nil {
		m.fail(err)
		return
	}
	m.clampCursor()
	if !changed {
		m.Status = StatusBar{Text: "nothing changed"}
		return
	}
	switch a.Kind {
	case model.ActionDeleteTask:
		m.Status = StatusBar{Text: "task deleted"}
	case model.ActionClearSheetURL:
		m.Status = StatusBar{Text: "sheet link cleared"}
	default:
		m.Status = StatusBar{Text: string(a.Kind)}
	}
}
