package storage

const (
	KeyTasks        = "tasks"
	KeySheetURL     = "sheet-url"
	KeyCorruptTasks = "tasks.corrupt"
)

type Entry struct {
	Key   string
	Value string
}
