package model

import (
	"reflect"
	"testing"
	"time"
)

func mustApply(t *testing.T, s AppState, a Action) AppState {
	t.Helper()
	next, changed := Apply(s, a)
	if !changed {
		t.Fatalf("expected %s to change state", a.Kind)
	}
	return next
}

func TestApplyAddPrependsAndNewestHasMaxID(t *testing.T) {
	gen := NewIDGenerator(func() time.Time { return time.UnixMilli(1_700_000_000_000) })
	var s AppState
	for _, text := range []string{"one", "two", "three", "four"} {
		s = mustApply(t, s, AddTask(gen.Next(), text))
	}
	if len(s.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(s.Tasks))
	}
	if s.Tasks[0].Text != "four" || s.Tasks[0].Completed {
		t.Fatalf("expected newest task first and open, got %+v", s.Tasks[0])
	}
	if s.Tasks[0].ID != s.Tasks.MaxID() {
		t.Fatalf("newest id %d is not max id %d", s.Tasks[0].ID, s.Tasks.MaxID())
	}
}

func TestApplyAddRejectsEmptyAndDuplicate(t *testing.T) {
	s := mustApply(t, AppState{}, AddTask(1, "  trimmed  "))
	if s.Tasks[0].Text != "trimmed" {
		t.Fatalf("expected trimmed text, got %q", s.Tasks[0].Text)
	}
	if _, changed := Apply(s, AddTask(2, "   ")); changed {
		t.Fatal("expected empty text to be ignored")
	}
	if _, changed := Apply(s, AddTask(1, "again")); changed {
		t.Fatal("expected duplicate id to be ignored")
	}
}

func TestApplyToggleIsInvolution(t *testing.T) {
	s := AppState{Tasks: TaskList{{ID: 2, Text: "b"}, {ID: 1, Text: "a", Completed: true}}}
	once := mustApply(t, s, ToggleTask(2))
	if !once.Tasks[0].Completed || once.Tasks[1] != s.Tasks[1] {
		t.Fatalf("unexpected state after toggle: %+v", once.Tasks)
	}
	if s.Tasks[0].Completed {
		t.Fatal("toggle mutated the input state")
	}
	twice := mustApply(t, once, ToggleTask(2))
	if !reflect.DeepEqual(twice, s) {
		t.Fatalf("toggle twice = %+v, want %+v", twice, s)
	}
}

func TestApplyMissingIDIsNoop(t *testing.T) {
	s := AppState{Tasks: TaskList{{ID: 1, Text: "a"}}}
	if _, changed := Apply(s, ToggleTask(99)); changed {
		t.Fatal("toggle on missing id should be a no-op")
	}
	if _, changed := Apply(s, DeleteTask(99)); changed {
		t.Fatal("delete on missing id should be a no-op")
	}
}

func TestApplyDeleteRemovesExactlyOne(t *testing.T) {
	s := AppState{Tasks: TaskList{
		{ID: 3, Text: "c", Completed: true},
		{ID: 2, Text: "b"},
		{ID: 1, Text: "a", Completed: true},
	}}
	next := mustApply(t, s, DeleteTask(2))
	want := TaskList{{ID: 3, Text: "c", Completed: true}, {ID: 1, Text: "a", Completed: true}}
	if !reflect.DeepEqual(next.Tasks, want) {
		t.Fatalf("tasks after delete = %+v, want %+v", next.Tasks, want)
	}
	if len(s.Tasks) != 3 {
		t.Fatal("delete mutated the input state")
	}
}

func TestApplySheetURL(t *testing.T) {
	s := mustApply(t, AppState{}, SetSheetURL("  https://example.com/sheet  "))
	if s.Sheet.URL != "https://example.com/sheet" {
		t.Fatalf("unexpected url %q", s.Sheet.URL)
	}
	if _, changed := Apply(s, SetSheetURL("   ")); changed {
		t.Fatal("blank url should be ignored")
	}
	cleared := mustApply(t, s, ClearSheetURL())
	if cleared.Sheet.IsSet() {
		t.Fatalf("expected cleared url, got %q", cleared.Sheet.URL)
	}
	if _, changed := Apply(cleared, ClearSheetURL()); changed {
		t.Fatal("clearing an unset url should be a no-op")
	}
}
