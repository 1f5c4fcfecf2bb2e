package update

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/session"
)

var (
	ErrNoSheetLink     = errors.New("no sheet linked")
	ErrUnsupportedLink = errors.New("only http and https links can be opened")
)

func (m Model) startSheetEdit() Model {
	current := m.State().Sheet.URL
	m.Sheet = SheetEditorState{Editing: true, Input: current}
	m.sheetInput.SetValue(current)
	m.sheetInput.Focus()
	m.Status = StatusBar{Text: "editing sheet link"}
	return m
}

// handleSheetEditKey saves on enter. A blank value is not saved and the
// editor stays open.
func (m Model) handleSheetEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeSheetEditor()
		m.Status = StatusBar{Text: "sheet edit cancelled"}
		return m, nil
	case "enter":
		raw := m.sheetInput.Value()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		if err := m.session.SetSheetURL(m.ctx, raw); err != nil {
			m.fail(err)
			return m, nil
		}
		m = m.closeSheetEditor()
		m.Status = StatusBar{Text: "sheet link saved"}
		return m, nil
	}
	cmd := typeInto(&m.sheetInput, msg)
	m.Sheet.Input = m.sheetInput.Value()
	return m, cmd
}

func (m Model) closeSheetEditor() Model {
	m.Sheet = SheetEditorState{}
	m.sheetInput.SetValue("")
	m.sheetInput.Blur()
	return m
}

func (m Model) requestClearSheet() Model {
	if !m.State().Sheet.IsSet() {
		m.Status = StatusBar{Text: ErrNoSheetLink.Error()}
		return m
	}
	return m.requestConfirm(session.PromptClearSheet, model.ClearSheetURL())
}

func (m Model) openSheetCmd() tea.Cmd {
	link := m.State().Sheet.URL
	opener := m.opener
	return func() tea.Msg {
		if err := OpenLink(opener, link); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SetStatusMsg{Text: "opened sheet link"}
	}
}

func (m Model) copySheetCmd() tea.Cmd {
	link := m.State().Sheet.URL
	clip := m.clipboard
	return func() tea.Msg {
		if link == "" {
			return AppErrorMsg{Err: ErrNoSheetLink}
		}
		if err := clip.WriteAll(link); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("copy link: %w", err)}
		}
		return SetStatusMsg{Text: "sheet link copied"}
	}
}

// OpenLink hands link to the opener after checking it is a web URL, so a
// stored value can never launch a local file or script handler.
func OpenLink(opener URLOpener, link string) error {
	if link == "" {
		return ErrNoSheetLink
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parse link: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLink, u.Scheme)
	}
	if err := opener.Open(u.String()); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	return nil
}
