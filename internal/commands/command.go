package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "done"
	TypeDelete Type = "rm"
	TypeSheet  Type = "sheet"
	TypeOpen   Type = "open"
)

var aliases = map[string]Type{
	"add":    TypeAdd,
	"new":    TypeAdd,
	"done":   TypeToggle,
	"toggle": TypeToggle,
	"rm":     TypeDelete,
	"delete": TypeDelete,
	"sheet":  TypeSheet,
	"open":   TypeOpen,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

type TaskArgs struct {
	Ref TaskRef
}

type SheetArgs struct {
	URL   string
	Clear bool
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *TaskArgs
	Delete *TaskArgs
	Sheet  *SheetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	rest := strings.TrimSpace(raw[len(parts[0]):])

	typ, ok := aliases[head]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	switch typ {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeToggle, TypeDelete:
		return parseTaskCommand(input, typ, parts[1:])
	case TypeSheet:
		return parseSheet(input, parts[1:])
	default:
		return Command{Type: TypeOpen, Raw: input}, nil
	}
}

func parseAdd(raw string, text string) (Command, error) {
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseTaskCommand(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one task reference", typ)}
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeToggle {
		cmd.Toggle = &TaskArgs{Ref: ref}
	} else {
		cmd.Delete = &TaskArgs{Ref: ref}
	}
	return cmd, nil
}

func parseSheet(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sheet requires a url or \"clear\""}
	}
	if strings.EqualFold(args[0], "clear") {
		return Command{Type: TypeSheet, Raw: raw, Sheet: &SheetArgs{Clear: true}}, nil
	}
	return Command{Type: TypeSheet, Raw: raw, Sheet: &SheetArgs{URL: args[0]}}, nil
}
