package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/session"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add     string
	Toggle  string
	Delete  string
	Sheet   string
	Open    string
	Copy    string
	Clear   string
	Palette string
	Help    string
	Quit    string
}

// ConfirmState is the modal shown before a destructive action. Action is
// dispatched only when the user answers yes.
type ConfirmState struct {
	Active bool
	Prompt string
	Action model.Action
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type SheetEditorState struct {
	Editing bool
	Input   string
}

type Model struct {
	Cursor         int
	Adding         bool
	AddInput       string
	Sheet          SheetEditorState
	Confirm        ConfirmState
	Palette        CommandPaletteState
	HelpVisible    bool
	ConfirmDeletes bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Width          int

	ctx       context.Context
	session   *session.Session
	logger    *log.Logger
	opener    URLOpener
	clipboard ClipboardWriter

	addInput     textinput.Model
	sheetInput   textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type RuntimeConfig struct {
	ConfirmDeletes bool
	Opener         URLOpener
	Clipboard      ClipboardWriter
	Logger         *log.Logger
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ConfirmDeletes: true,
		Opener:         ExecOpener{},
		Clipboard:      SystemClipboard{},
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(ctx context.Context, sess *session.Session) Model {
	return NewModelWithConfig(ctx, sess, DefaultRuntimeConfig())
}

func NewModelWithConfig(ctx context.Context, sess *session.Session, cfg RuntimeConfig) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ConfirmDeletes: cfg.ConfirmDeletes,
		Keys: GlobalKeyMap{
			Add:     "a",
			Toggle:  "x",
			Delete:  "d",
			Sheet:   "c",
			Open:    "o",
			Copy:    "y",
			Clear:   "X",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		ctx:       ctx,
		session:   sess,
		logger:    cfg.Logger,
		opener:    cfg.Opener,
		clipboard: cfg.Clipboard,
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.opener == nil {
		m.opener = NoopOpener{}
	}
	if m.clipboard == nil {
		m.clipboard = NoopClipboard{}
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "what needs doing?"
	m.addInput.CharLimit = 512
	m.addInput.Width = 48

	m.sheetInput = textinput.New()
	m.sheetInput.Prompt = "url> "
	m.sheetInput.Placeholder = "https://docs.google.com/spreadsheets/..."
	m.sheetInput.CharLimit = 2048
	m.sheetInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 512
	m.commandInput.Width = 36

	m.helpModel = help.New()
}

// State is the session's current state.
func (m Model) State() model.AppState {
	return m.session.State()
}

func (m Model) tasks() model.TaskList {
	return m.session.State().Tasks.Sorted()
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.tasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.session.State().Tasks)
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// followTask moves the cursor to id after a re-sort.
func (m *Model) followTask(id int64) {
	for i, t := range m.tasks() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("action failed", "err", err)
}
