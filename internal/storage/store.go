package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/guia/internal/model"
)

// CorruptPolicy decides what Load does with a task entry that fails to decode.
type CorruptPolicy string

const (
	// CorruptDiscard starts with an empty list and keeps the raw payload under
	// KeyCorruptTasks.
	CorruptDiscard CorruptPolicy = "discard"
	CorruptFail    CorruptPolicy = "fail"
)

func ParseCorruptPolicy(raw string) (CorruptPolicy, error) {
	switch CorruptPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", CorruptDiscard:
		return CorruptDiscard, nil
	case CorruptFail:
		return CorruptFail, nil
	default:
		return "", fmt.Errorf("storage: unknown corrupt policy %q", raw)
	}
}

// Store maps an AppState onto the two repository entries.
type Store struct {
	repo   Repository
	logger *log.Logger
	policy CorruptPolicy
}

func NewStore(repo Repository, logger *log.Logger, policy CorruptPolicy) *Store {
	if logger == nil {
		logger = log.Default()
	}
	if policy == "" {
		policy = CorruptDiscard
	}
	return &Store{repo: repo, logger: logger, policy: policy}
}

func (s *Store) Load(ctx context.Context) (model.AppState, error) {
	var state model.AppState

	raw, err := s.repo.Get(ctx, KeyTasks)
	switch {
	case errors.Is(err, ErrNotFound):
		state.Tasks = model.TaskList{}
	case err != nil:
		return model.AppState{}, fmt.Errorf("read tasks: %w", err)
	default:
		tasks, decodeErr := DecodeTasks(raw)
		if decodeErr != nil {
			if s.policy == CorruptFail || !errors.Is(decodeErr, ErrCorruptTasks) {
				return model.AppState{}, decodeErr
			}
			s.logger.Warn("discarding corrupt task data", "err", decodeErr, "kept_as", KeyCorruptTasks, "bytes", len(raw))
			if putErr := s.repo.Put(ctx, Entry{Key: KeyCorruptTasks, Value: raw}); putErr != nil {
				s.logger.Error("could not keep corrupt task data", "err", putErr)
			}
			tasks = model.TaskList{}
		}
		state.Tasks = tasks
	}

	url, err := s.repo.Get(ctx, KeySheetURL)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return model.AppState{}, fmt.Errorf("read sheet url: %w", err)
	default:
		state.Sheet.URL = url
	}

	s.logger.Debug("state loaded", "tasks", len(state.Tasks), "sheet", state.Sheet.IsSet())
	return state, nil
}

func (s *Store) Save(ctx context.Context, state model.AppState) error {
	encoded, err := EncodeTasks(state.Tasks)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx,
		Entry{Key: KeyTasks, Value: encoded},
		Entry{Key: KeySheetURL, Value: state.Sheet.URL},
	); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	s.logger.Debug("state saved", "tasks", len(state.Tasks))
	return nil
}

// SavedAt reports when the state was last saved. ok is false when the
// repository keeps no timestamps or nothing was saved yet.
func (s *Store) SavedAt(ctx context.Context) (at time.Time, ok bool, err error) {
	stamper, isStamper := s.repo.(Stamper)
	if !isStamper {
		return time.Time{}, false, nil
	}
	at, err = stamper.UpdatedAt(ctx, KeyTasks)
	switch {
	case errors.Is(err, ErrNotFound):
		return time.Time{}, false, nil
	case err != nil:
		return time.Time{}, false, fmt.Errorf("read save time: %w", err)
	}
	return at, true, nil
}

func (s *Store) Close() error {
	return s.repo.Close()
}
