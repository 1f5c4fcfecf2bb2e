package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sandeepkv93/guia/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrCorruptTasks = errors.New("storage: corrupt task data")

//go:embed tasks.schema.json
var tasksSchemaSource string

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		tasksSchema, tasksSchemaErr = jsonschema.CompileString("tasks.schema.json", tasksSchemaSource)
	})
	return tasksSchema, tasksSchemaErr
}

// EncodeTasks serializes tasks in insertion order. A nil list encodes as [].
func EncodeTasks(tasks model.TaskList) (string, error) {
	if tasks == nil {
		tasks = model.TaskList{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(raw), nil
}

// DecodeTasks parses and validates a stored task payload. Every failure wraps
// ErrCorruptTasks. A blank payload decodes to an empty list.
func DecodeTasks(raw string) (model.TaskList, error) {
	if strings.TrimSpace(raw) == "" {
		return model.TaskList{}, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTasks, err)
	}
	schema, err := compiledTasksSchema()
	if err != nil {
		return nil, fmt.Errorf("compile tasks schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptTasks, schemaErrorSummary(err))
	}
	var tasks model.TaskList
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTasks, err)
	}
	if err := tasks.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTasks, err)
	}
	return tasks, nil
}

func schemaErrorSummary(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	// report the deepest cause; the top-level message only says "doesn't validate"
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
