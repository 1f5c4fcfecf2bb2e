package model

import (
	"strings"
	"sync"
	"time"
)

type SheetConfig struct {
	URL string
}

func (s SheetConfig) IsSet() bool { return s.URL != "" }

type AppState struct {
	Tasks TaskList
	Sheet SheetConfig
}

type ActionKind string

const (
	ActionAddTask       ActionKind = "add_task"
	ActionToggleTask    ActionKind = "toggle_task"
	ActionDeleteTask    ActionKind = "delete_task"
	ActionSetSheetURL   ActionKind = "set_sheet_url"
	ActionClearSheetURL ActionKind = "clear_sheet_url"
)

type Action struct {
	Kind ActionKind
	ID   int64
	Text string
	URL  string
}

func AddTask(id int64, text string) Action { return Action{Kind: ActionAddTask, ID: id, Text: text} }
func ToggleTask(id int64) Action           { return Action{Kind: ActionToggleTask, ID: id} }
func DeleteTask(id int64) Action           { return Action{Kind: ActionDeleteTask, ID: id} }
func SetSheetURL(url string) Action        { return Action{Kind: ActionSetSheetURL, URL: url} }
func ClearSheetURL() Action                { return Action{Kind: ActionClearSheetURL} }

// Apply returns the state after a, and whether anything changed. The input
// state is never modified and the returned task slice is never shared with it.
func Apply(s AppState, a Action) (AppState, bool) {
	switch a.Kind {
	case ActionAddTask:
		text := strings.TrimSpace(a.Text)
		if text == "" || a.ID <= 0 {
			return s, false
		}
		if _, exists := s.Tasks.Find(a.ID); exists {
			return s, false
		}
		tasks := make(TaskList, 0, len(s.Tasks)+1)
		tasks = append(tasks, Task{ID: a.ID, Text: text})
		tasks = append(tasks, s.Tasks...)
		return AppState{Tasks: tasks, Sheet: s.Sheet}, true
	case ActionToggleTask:
		if _, ok := s.Tasks.Find(a.ID); !ok {
			return s, false
		}
		tasks := s.Tasks.clone()
		for i := range tasks {
			if tasks[i].ID == a.ID {
				tasks[i].Completed = !tasks[i].Completed
			}
		}
		return AppState{Tasks: tasks, Sheet: s.Sheet}, true
	case ActionDeleteTask:
		if _, ok := s.Tasks.Find(a.ID); !ok {
			return s, false
		}
		tasks := make(TaskList, 0, len(s.Tasks)-1)
		for _, t := range s.Tasks {
			if t.ID != a.ID {
				tasks = append(tasks, t)
			}
		}
		return AppState{Tasks: tasks, Sheet: s.Sheet}, true
	case ActionSetSheetURL:
		url := strings.TrimSpace(a.URL)
		if url == "" {
			return s, false
		}
		return AppState{Tasks: s.Tasks.clone(), Sheet: SheetConfig{URL: url}}, true
	case ActionClearSheetURL:
		if !s.Sheet.IsSet() {
			return s, false
		}
		return AppState{Tasks: s.Tasks.clone(), Sheet: SheetConfig{}}, true
	default:
		return s, false
	}
}

// IDGenerator hands out millisecond timestamps, bumped past the last issued
// or observed id so two tasks created within the same millisecond still differ.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Observe(tasks TaskList) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if max := tasks.MaxID(); max > g.last {
		g.last = max
	}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
