package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidID   = errors.New("model: invalid task id")
	ErrEmptyText   = errors.New("model: task text is required")
	ErrDuplicateID = errors.New("model: duplicate task id")
)

type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// TaskList is kept in insertion order, newest first. Display order comes from
// Sorted.
type TaskList []Task

func (l TaskList) Find(id int64) (Task, bool) {
	for _, t := range l {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (l TaskList) MaxID() int64 {
	var max int64
	for _, t := range l {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

func (l TaskList) Validate() error {
	seen := make(map[int64]bool, len(l))
	for i, t := range l {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Sorted returns a copy ordered incomplete first, then by id descending.
func (l TaskList) Sorted() TaskList {
	out := make(TaskList, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (l TaskList) Counts() (open int, done int) {
	for _, t := range l {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}

func (l TaskList) clone() TaskList {
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}
