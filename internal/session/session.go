// Package session owns the task list state for one run and applies every
// user action as mutate, persist, then render.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/guia/internal/model"
)

const (
	PromptDeleteTask = "Delete task?"
	PromptClearSheet = "Clear sheet link?"
)

type Persister interface {
	Load(ctx context.Context) (model.AppState, error)
	Save(ctx context.Context, state model.AppState) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

type Renderer interface {
	Render(state model.AppState)
}

type RenderFunc func(state model.AppState)

func (f RenderFunc) Render(state model.AppState) { f(state) }

type Options struct {
	Confirm Confirmer
	Render  Renderer
	Now     func() time.Time
	Logger  *log.Logger
}

type Session struct {
	store   Persister
	confirm Confirmer
	render  Renderer
	ids     *model.IDGenerator
	logger  *log.Logger
	state   model.AppState
}

func New(store Persister, opts Options) *Session {
	s := &Session{
		store:   store,
		confirm: opts.Confirm,
		render:  opts.Render,
		ids:     model.NewIDGenerator(opts.Now),
		logger:  opts.Logger,
		state:   model.AppState{Tasks: model.TaskList{}},
	}
	if s.confirm == nil {
		s.confirm = AlwaysConfirm
	}
	if s.render == nil {
		s.render = RenderFunc(func(model.AppState) {})
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Open creates a session from the persisted state and renders it once.
func Open(ctx context.Context, store Persister, opts Options) (*Session, error) {
	s := New(store, opts)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Reload(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if state.Tasks == nil {
		state.Tasks = model.TaskList{}
	}
	s.state = state
	s.ids.Observe(state.Tasks)
	s.render.Render(s.state)
	return nil
}

func (s *Session) State() model.AppState {
	return s.state
}

// Dispatch applies a to the current state. Actions that change nothing are
// neither persisted nor rendered. The in-memory state only advances after a
// successful save.
func (s *Session) Dispatch(ctx context.Context, a model.Action) (bool, error) {
	next, changed := model.Apply(s.state, a)
	if !changed {
		s.logger.Debug("action ignored", "kind", a.Kind, "id", a.ID)
		return false, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error("save failed", "kind", a.Kind, "err", err)
		return false, fmt.Errorf("save state: %w", err)
	}
	s.state = next
	s.logger.Info("state changed", "kind", a.Kind, "id", a.ID, "tasks", len(next.Tasks))
	s.render.Render(s.state)
	return true, nil
}

// AddTask adds text as a new open task. Blank text is ignored.
func (s *Session) AddTask(ctx context.Context, text string) (model.Task, bool, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, false, nil
	}
	a := model.AddTask(s.ids.Next(), text)
	changed, err := s.Dispatch(ctx, a)
	if err != nil || !changed {
		return model.Task{}, false, err
	}
	task, _ := s.state.Tasks.Find(a.ID)
	return task, true, nil
}

func (s *Session) ToggleTask(ctx context.Context, id int64) error {
	_, err := s.Dispatch(ctx, model.ToggleTask(id))
	return err
}

// DeleteTask removes the task after the confirmer approves. A declined prompt
// leaves everything untouched. An unknown id is a no-op and is not asked about.
func (s *Session) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.state.Tasks.Find(id); !ok {
		s.logger.Debug("delete of unknown task ignored", "id", id)
		return false, nil
	}
	if !s.confirm.Confirm(PromptDeleteTask) {
		s.logger.Debug("delete declined", "id", id)
		return false, nil
	}
	return s.Dispatch(ctx, model.DeleteTask(id))
}

func (s *Session) SetSheetURL(ctx context.Context, url string) error {
	_, err := s.Dispatch(ctx, model.SetSheetURL(url))
	return err
}

func (s *Session) ClearSheetURL(ctx context.Context) (bool, error) {
	if !s.state.Sheet.IsSet() {
		return false, nil
	}
	if !s.confirm.Confirm(PromptClearSheet) {
		return false, nil
	}
	return s.Dispatch(ctx, model.ClearSheetURL())
}
