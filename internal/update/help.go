package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/guia/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.contextBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

// contextBindings lists the keys that apply in the current input mode.
func (m Model) contextBindings() []KeyBinding {
	switch {
	case m.Confirm.Active:
		return []KeyBinding{
			{Key: "y", Action: "confirm"},
			{Key: "n/esc", Action: "cancel"},
		}
	case m.Adding:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "stop adding"},
		}
	case m.Sheet.Editing:
		return []KeyBinding{
			{Key: "enter", Action: "save link"},
			{Key: "esc", Action: "cancel edit"},
		}
	default:
		return []KeyBinding{
			{Key: m.Keys.Add + "/i", Action: "new task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "space/" + m.Keys.Toggle, Action: "toggle done"},
			{Key: m.Keys.Delete, Action: "delete task"},
			{Key: m.Keys.Sheet, Action: "edit sheet link"},
			{Key: m.Keys.Open, Action: "open sheet link"},
			{Key: m.Keys.Copy, Action: "copy sheet link"},
			{Key: m.Keys.Clear, Action: "clear sheet link"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.contextBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.contextBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
