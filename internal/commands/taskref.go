package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/guia/internal/model"
)

var (
	ErrTaskRefRequired = errors.New("task reference required")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskRef points at a task either by its 1-based position in the displayed
// list or, with a leading '#', by id.
type TaskRef struct {
	Position int
	ID       int64
}

func (r TaskRef) IsID() bool { return r.ID > 0 }

func (r TaskRef) String() string {
	if r.IsID() {
		return fmt.Sprintf("#%d", r.ID)
	}
	return strconv.Itoa(r.Position)
}

func ParseTaskRef(raw string) (TaskRef, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if strings.HasPrefix(s, "#") {
		id, err := strconv.ParseInt(s[1:], 10, 64)
		if err != nil || id <= 0 {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
		}
		return TaskRef{ID: id}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", s)
	}
	return TaskRef{Position: n}, nil
}

// ResolveTaskRef finds the referenced task. Positions count in display order.
func ResolveTaskRef(tasks model.TaskList, ref TaskRef) (model.Task, error) {
	if ref.IsID() {
		if t, ok := tasks.Find(ref.ID); ok {
			return t, nil
		}
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	sorted := tasks.Sorted()
	if ref.Position < 1 || ref.Position > len(sorted) {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	}
	return sorted[ref.Position-1], nil
}

// TargetID returns the id a mutation should act on. An id reference is used
// as given, so a task that no longer exists turns the mutation into a no-op.
// Positions still have to land inside the displayed list.
func TargetID(tasks model.TaskList, ref TaskRef) (int64, error) {
	if ref.IsID() {
		return ref.ID, nil
	}
	task, err := ResolveTaskRef(tasks, ref)
	if err != nil {
		return 0, err
	}
	return task.ID, nil
}
