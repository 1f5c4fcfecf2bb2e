package update

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type URLOpener interface {
	Open(url string) error
}

type NoopOpener struct{}

func (NoopOpener) Open(string) error { return nil }

// ExecOpener launches the platform browser handler, or Command when set.
type ExecOpener struct {
	Command string
}

func (o ExecOpener) Open(url string) error {
	if cmd := strings.Fields(o.Command); len(cmd) > 0 {
		return exec.Command(cmd[0], append(cmd[1:], url)...).Start()
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

type ClipboardWriter interface {
	WriteAll(text string) error
}

type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type NoopClipboard struct{}

func (NoopClipboard) WriteAll(string) error { return nil }

// typeInto hands msg to a focused input, which edits at its cursor.
func typeInto(input *textinput.Model, msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}
