package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return nil
}

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type env struct {
	dir     string
	backend string
}

func newEnv(t *testing.T, backend string) env {
	t.Helper()
	t.Setenv("GUIA_CONFIG", "")
	t.Setenv("GUIA_CONFIRM_DELETES", "")
	t.Setenv("GUIA_CORRUPT_POLICY", "")
	return env{dir: t.TempDir(), backend: backend}
}

func (e env) dataPath() string {
	if e.backend == "file" {
		return filepath.Join(e.dir, "state.json")
	}
	return filepath.Join(e.dir, "guia.db")
}

func (e env) args(args ...string) []string {
	base := []string{
		"--config", filepath.Join(e.dir, "absent.toml"),
		"--backend", e.backend,
		"--data", e.dataPath(),
	}
	return append(base, args...)
}

func (e env) run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(t.Context(), e.args(args...), strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e env) mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, errOut, code := e.run(t, stdin, args...)
	if code != 0 {
		t.Fatalf("guia %v exited %d: %s", args, code, errOut)
	}
	return out
}

func TestAddAndListOnSQLite(t *testing.T) {
	e := newEnv(t, "sqlite")
	out := e.mustRun(t, "", "add", "buy", "milk")
	if !strings.Contains(out, "tasks (1 open, 0 done):") || !strings.Contains(out, "  1. [ ] buy milk") {
		t.Fatalf("add should print the list, got %q", out)
	}
	if !strings.Contains(out, "sheet: (no sheet linked)") {
		t.Fatalf("add should print the sheet line, got %q", out)
	}
	e.mustRun(t, "", "add", "call mom")

	out = e.mustRun(t, "", "list")
	first := strings.Index(out, "call mom")
	second := strings.Index(out, "buy milk")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected newest first, got %q", out)
	}
	if strings.Contains(out, ">") {
		t.Fatalf("list output should have no cursor, got %q", out)
	}
	if !strings.Contains(out, "saved: ") {
		t.Fatalf("sqlite list should show the save time, got %q", out)
	}
}

func TestFailingCommandClosesLogFile(t *testing.T) {
	e := newEnv(t, "file")
	logPath := filepath.Join(e.dir, "guia.log")
	t.Setenv("GUIA_LOG_PATH", logPath)
	t.Setenv("GUIA_LOG_LEVEL", "debug")

	var stdout, stderr bytes.Buffer
	a := newApp(t.Context(), strings.NewReader(""), &stdout, &stderr)
	if code := a.execute(e.args("done", "9")); code != 1 {
		t.Fatalf("expected failure, got code %d", code)
	}
	if a.closeLog != nil {
		t.Fatal("log file left open after a failing command")
	}
	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "config loaded") {
		t.Fatalf("expected debug lines in log file, got %q", raw)
	}
}

func TestAddBlankIsIgnored(t *testing.T) {
	e := newEnv(t, "file")
	out, errOut, code := e.run(t, "", "add", "   ")
	if code != 0 || out != "" || errOut != "" {
		t.Fatalf("blank add should be silent, code=%d stdout=%q stderr=%q", code, out, errOut)
	}
	if _, err := os.Stat(e.dataPath()); !os.IsNotExist(err) {
		t.Fatalf("blank add must not write the data file, stat err=%v", err)
	}
}

func TestDoneTogglesByPositionAndID(t *testing.T) {
	e := newEnv(t, "file")
	e.mustRun(t, "", "add", "one")
	e.mustRun(t, "", "add", "two")

	out := e.mustRun(t, "", "done", "1")
	if !strings.Contains(out, "1. [ ] one") || !strings.Contains(out, "2. [x] two") {
		t.Fatalf("expected completed task last, got %q", out)
	}

	ids := e.mustRun(t, "", "list", "--ids")
	idx := strings.Index(ids, "two #")
	if idx < 0 {
		t.Fatalf("expected ids in list, got %q", ids)
	}
	ref := strings.Fields(ids[idx+len("two "):])[0]
	out = e.mustRun(t, "", "done", ref)
	if !strings.Contains(out, "tasks (2 open, 0 done):") {
		t.Fatalf("expected toggle by id to reopen, got %q", out)
	}

	if _, errOut, code := e.run(t, "", "done", "9"); code == 0 || !strings.Contains(errOut, "task not found") {
		t.Fatalf("expected not found, code=%d stderr=%q", code, errOut)
	}

	before := e.mustRun(t, "", "list")
	for _, args := range [][]string{{"done", "#123"}, {"rm", "--yes", "#123"}, {"rm", "#123"}} {
		out, errOut, code := e.run(t, "", args...)
		if code != 0 || out != "" || errOut != "" {
			t.Fatalf("guia %v should be a silent no-op, code=%d stdout=%q stderr=%q", args, code, out, errOut)
		}
	}
	if after := e.mustRun(t, "", "list"); after != before {
		t.Fatalf("unknown ids changed the list: %q -> %q", before, after)
	}
}

func TestRmAsksOnStdin(t *testing.T) {
	e := newEnv(t, "file")
	e.mustRun(t, "", "add", "keep")
	e.mustRun(t, "", "add", "drop")

	out := e.mustRun(t, "n\n", "rm", "1")
	if !strings.Contains(out, "Delete task? [y/N]") || !strings.Contains(out, "cancelled") {
		t.Fatalf("expected prompt and cancel, got %q", out)
	}
	if list := e.mustRun(t, "", "list"); !strings.Contains(list, "drop") {
		t.Fatalf("declined delete removed the task: %q", list)
	}

	out = e.mustRun(t, "", "rm", "1")
	if !strings.Contains(out, "cancelled") {
		t.Fatalf("EOF must count as no, got %q", out)
	}

	out = e.mustRun(t, "yes\n", "rm", "1")
	if strings.Contains(out, "drop") || !strings.Contains(out, "1. [ ] keep") {
		t.Fatalf("expected only drop removed, got %q", out)
	}

	out = e.mustRun(t, "", "rm", "--yes", "1")
	if !strings.Contains(out, "(no tasks yet)") {
		t.Fatalf("expected empty list, got %q", out)
	}
}

func TestRmSkipsPromptWhenConfirmDisabled(t *testing.T) {
	e := newEnv(t, "file")
	t.Setenv("GUIA_CONFIRM_DELETES", "false")
	e.mustRun(t, "", "add", "gone")
	out := e.mustRun(t, "", "rm", "1")
	if strings.Contains(out, "[y/N]") || !strings.Contains(out, "(no tasks yet)") {
		t.Fatalf("expected delete without prompt, got %q", out)
	}
}

func TestSheetLifecycle(t *testing.T) {
	e := newEnv(t, "sqlite")
	if out := e.mustRun(t, "", "sheet"); strings.TrimSpace(out) != "sheet: (no sheet linked)" {
		t.Fatalf("unexpected empty sheet output %q", out)
	}
	out := e.mustRun(t, "", "sheet", "set", "https://example.com/sheet")
	if !strings.Contains(out, "sheet: https://example.com/sheet") {
		t.Fatalf("set should print the state, got %q", out)
	}
	if out := e.mustRun(t, "", "sheet", "show"); strings.TrimSpace(out) != "sheet: https://example.com/sheet" {
		t.Fatalf("unexpected show output %q", out)
	}
	if out, errOut, code := e.run(t, "", "sheet", "set", " "); code != 0 || out != "" || errOut != "" {
		t.Fatalf("blank url should be ignored, code=%d stdout=%q stderr=%q", code, out, errOut)
	}
	if out := e.mustRun(t, "", "sheet", "show"); strings.TrimSpace(out) != "sheet: https://example.com/sheet" {
		t.Fatalf("blank url changed the link: %q", out)
	}

	out = e.mustRun(t, "y\n", "sheet", "clear")
	if !strings.Contains(out, "Clear sheet link? [y/N]") || !strings.Contains(out, "sheet: (no sheet linked)") {
		t.Fatalf("unexpected clear output %q", out)
	}
}

func TestSheetOpenAndCopy(t *testing.T) {
	e := newEnv(t, "file")
	e.mustRun(t, "", "sheet", "set", "https://example.com/sheet")

	opener := &recordingOpener{}
	clip := &recordingClipboard{}
	runWith := func(args ...string) (string, error) {
		var stdout, stderr bytes.Buffer
		a := newApp(t.Context(), strings.NewReader(""), &stdout, &stderr)
		a.opener = opener
		a.clipboard = clip
		root := a.command()
		root.SetArgs(e.args(args...))
		root.SetOut(&stdout)
		root.SetErr(&stderr)
		err := root.ExecuteContext(t.Context())
		return stdout.String(), err
	}

	if _, err := runWith("sheet", "open"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(opener.urls) != 1 || opener.urls[0] != "https://example.com/sheet" {
		t.Fatalf("unexpected opened urls %v", opener.urls)
	}
	if out, err := runWith("sheet", "copy"); err != nil || !strings.Contains(out, "copied") {
		t.Fatalf("copy: out=%q err=%v", out, err)
	}
	if clip.text != "https://example.com/sheet" {
		t.Fatalf("unexpected clipboard %q", clip.text)
	}

	e.mustRun(t, "", "sheet", "set", "file:///etc/passwd")
	if _, err := runWith("sheet", "open"); err == nil || !strings.Contains(err.Error(), "only http and https") {
		t.Fatalf("expected non-web link refused, got %v", err)
	}
	if len(opener.urls) != 1 {
		t.Fatalf("opener must not run for file links, got %v", opener.urls)
	}
}

func TestExportFormats(t *testing.T) {
	e := newEnv(t, "file")
	e.mustRun(t, "", "add", "<script>alert(1)</script>")
	e.mustRun(t, "", "sheet", "set", "https://example.com/sheet")

	html := e.mustRun(t, "", "export", "--format", "html")
	if strings.Contains(html, "<script>alert") || !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("html export must escape task text: %q", html)
	}

	md := e.mustRun(t, "", "export")
	if !strings.HasPrefix(md, "# Tasks") || !strings.Contains(md, "Sheet: <https://example.com/sheet>") {
		t.Fatalf("unexpected markdown export %q", md)
	}

	path := filepath.Join(e.dir, "out", "tasks.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	e.mustRun(t, "", "export", "-f", "json", "-o", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc exportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].Text != "<script>alert(1)</script>" || doc.SheetURL != "https://example.com/sheet" {
		t.Fatalf("unexpected json export %+v", doc)
	}

	if _, errOut, code := e.run(t, "", "export", "--format", "pdf"); code == 0 || !strings.Contains(errOut, "unknown export format") {
		t.Fatalf("expected format error, code=%d stderr=%q", code, errOut)
	}
}

func TestCorruptDataPolicies(t *testing.T) {
	e := newEnv(t, "file")
	if err := os.WriteFile(e.dataPath(), []byte(`{"tasks":"not json","sheet-url":"https://example.com/sheet"}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Setenv("GUIA_CORRUPT_POLICY", "fail")
	if _, errOut, code := e.run(t, "", "list"); code == 0 || !strings.Contains(errOut, "corrupt") {
		t.Fatalf("fail policy should stop, code=%d stderr=%q", code, errOut)
	}

	t.Setenv("GUIA_CORRUPT_POLICY", "discard")
	out, errOut, code := e.run(t, "", "list")
	if code != 0 {
		t.Fatalf("discard policy should load, stderr=%q", errOut)
	}
	if !strings.Contains(out, "(no tasks yet)") || !strings.Contains(out, "sheet: https://example.com/sheet") {
		t.Fatalf("expected empty tasks and kept sheet, got %q", out)
	}
	if !strings.Contains(errOut, "discarding corrupt task data") {
		t.Fatalf("expected warning on stderr, got %q", errOut)
	}

	raw, err := os.ReadFile(e.dataPath())
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	if !strings.Contains(string(raw), "tasks.corrupt") {
		t.Fatalf("expected raw payload kept, got %s", raw)
	}
}

func TestUnknownBackendFails(t *testing.T) {
	e := newEnv(t, "postgres")
	if _, errOut, code := e.run(t, "", "list"); code == 0 || !strings.Contains(errOut, "unknown backend") {
		t.Fatalf("expected backend error, code=%d stderr=%q", code, errOut)
	}
}
