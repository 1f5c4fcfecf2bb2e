package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/guia/internal/commands"
	"github.com/sandeepkv93/guia/internal/views"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Long:  "Add a task. Blank text is ignored and nothing is written.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				a.logger.Debug("blank task ignored")
				return nil
			}
			sess, closeStore, err := a.openSession(nil, &statePrinter{out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer closeStore()

			_, _, err = sess.AddTask(cmd.Context(), text)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newListCmd(a *app) *cobra.Command {
	var pretty, showIDs bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the task list and sheet link",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := a.openSession(nil, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			state := sess.State()
			out := cmd.OutOrStdout()
			if pretty {
				md := views.RenderMarkdownTasks(views.ExportData{
					Items:    views.TaskItems(state.Tasks),
					SheetURL: state.Sheet.URL,
				})
				_, _ = fmt.Fprintln(out, views.RenderMarkdown(md))
				return nil
			}
			_, _ = fmt.Fprintln(out, views.RenderTaskList(views.TaskListData{
				Items:   views.TaskItems(state.Tasks),
				Cursor:  -1,
				ShowIDs: showIDs,
				Plain:   true,
			}))
			_, _ = fmt.Fprintln(out, sheetLine(state.Sheet))
			if at, ok, err := a.store.SavedAt(cmd.Context()); err != nil {
				a.logger.Warn("read save time", "err", err)
			} else if ok {
				_, _ = fmt.Fprintln(out, "saved: "+at.Local().Format(time.RFC3339))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render as formatted markdown")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show task ids")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done [position|#id]",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between open and done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := commands.ParseTaskRef(args[0])
			if err != nil {
				return err
			}
			sess, closeStore, err := a.openSession(nil, &statePrinter{out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := commands.TargetID(sess.State().Tasks, ref)
			if err != nil {
				return err
			}
			return sess.ToggleTask(cmd.Context(), id)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newRmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm [position|#id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := commands.ParseTaskRef(args[0])
			if err != nil {
				return err
			}
			sess, closeStore, err := a.openSession(a.confirmer(yes), &statePrinter{out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := commands.TargetID(sess.State().Tasks, ref)
			if err != nil {
				return err
			}
			if _, ok := sess.State().Tasks.Find(id); !ok {
				a.logger.Debug("no task with that id", "ref", ref)
				return nil
			}
			deleted, err := sess.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
