// Package cli wires configuration, storage and the session into the guia
// command line and the interactive terminal UI.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/guia/internal/config"
	"github.com/sandeepkv93/guia/internal/logging"
	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/session"
	"github.com/sandeepkv93/guia/internal/storage"
	"github.com/sandeepkv93/guia/internal/update"
	"github.com/spf13/cobra"
)

var Version = "dev"

type app struct {
	ctx    context.Context
	stdin  io.Reader
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	dataPath   string
	backend    string
	logLevel   string

	cfg      config.Config
	logger   *log.Logger
	closeLog func() error
	store    *storage.Store

	opener    update.URLOpener
	clipboard update.ClipboardWriter
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return newApp(ctx, stdin, stdout, stderr).execute(args)
}

// execute runs args and always releases the log file, including when the
// command fails and cobra skips its post-run hooks.
func (a *app) execute(args []string) int {
	defer func() {
		if err := a.teardown(); err != nil {
			_, _ = fmt.Fprintln(a.errOut, "Error: close log:", err)
		}
	}()
	root := a.command()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	if err := root.ExecuteContext(a.ctx); err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return 1
	}
	return 0
}

func newApp(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		ctx:    ctx,
		stdin:  stdin,
		in:     bufio.NewReader(stdin),
		out:    stdout,
		errOut: stderr,
	}
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guia",
		Short:   "A small task list with a linked sheet",
		Long:    "guia keeps a task list and one spreadsheet link. Without a subcommand it opens the terminal UI.",
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the TOML config file")
	cmd.PersistentFlags().StringVar(&a.dataPath, "data", "", "Path to the data file")
	cmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend (sqlite, file, memory)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRmCmd(a),
		newSheetCmd(a),
		newExportCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, config.Overrides{
		DataPath: a.dataPath,
		Backend:  a.backend,
		LogLevel: a.logLevel,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The UI owns the terminal, so without a log file it logs nowhere.
	fallback := a.errOut
	if cmd.Parent() == nil {
		fallback = io.Discard
	}
	logger, closeLog, err := logging.Open(cfg.LogPath, fallback, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	if a.opener == nil {
		a.opener = update.ExecOpener{Command: cfg.OpenCommand}
	}
	if a.clipboard == nil {
		a.clipboard = update.SystemClipboard{}
	}
	a.logger.Debug("config loaded", "backend", cfg.Backend, "data", cfg.DataPath)
	return nil
}

// teardown closes the log file once; later calls are no-ops.
func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}

// openSession opens the configured store and loads the session from it. The
// returned close func releases the store.
func (a *app) openSession(confirm session.Confirmer, render session.Renderer) (*session.Session, func(), error) {
	policy, err := storage.ParseCorruptPolicy(a.cfg.CorruptPolicy)
	if err != nil {
		return nil, nil, err
	}
	repo, err := storage.Open(a.cfg.Backend, a.cfg.DataPath)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewStore(repo, a.logger, policy)
	a.store = store
	closeStore := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("close store", "err", err)
		}
	}
	sess, err := session.Open(a.ctx, store, session.Options{
		Confirm: confirm,
		Render:  render,
		Logger:  a.logger,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return sess, closeStore, nil
}

func (a *app) runTUI() error {
	sess, closeStore, err := a.openSession(session.AlwaysConfirm, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	m := update.NewModelWithConfig(a.ctx, sess, update.RuntimeConfig{
		ConfirmDeletes: a.cfg.ConfirmDeletes,
		Opener:         a.opener,
		Clipboard:      a.clipboard,
		Logger:         a.logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(a.ctx), tea.WithInput(a.stdin), tea.WithOutput(a.out))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// confirmer returns the prompt used by destructive subcommands.
func (a *app) confirmer(skip bool) session.Confirmer {
	if skip || !a.cfg.ConfirmDeletes {
		return session.AlwaysConfirm
	}
	return promptConfirmer{in: a.in, out: a.out}
}

// statePrinter prints the whole state after every mutation. Open renders once
// before the command runs; that first render is skipped.
type statePrinter struct {
	out   io.Writer
	armed bool
}

func (p *statePrinter) Render(state model.AppState) {
	if !p.armed {
		p.armed = true
		return
	}
	writeState(p.out, state)
}
