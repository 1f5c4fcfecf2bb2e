package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/views"
)

// promptConfirmer asks on stdin. Anything but y or yes, including EOF, is a no.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(prompt string) bool {
	_, _ = fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func writeState(w io.Writer, state model.AppState) {
	_, _ = fmt.Fprintln(w, views.RenderTaskList(views.TaskListData{
		Items:  views.TaskItems(state.Tasks),
		Cursor: -1,
		Plain:  true,
	}))
	_, _ = fmt.Fprintln(w, sheetLine(state.Sheet))
}

func sheetLine(sheet model.SheetConfig) string {
	if !sheet.IsSet() {
		return "sheet: " + views.EmptySheetPlaceholder
	}
	return "sheet: " + views.EscapeText(sheet.URL)
}
