package cli

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/guia/internal/update"
	"github.com/spf13/cobra"
)

func newSheetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Show or change the linked sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSheet(a, cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newSheetSetCmd(a),
		newSheetClearCmd(a),
		newSheetShowCmd(a),
		newSheetOpenCmd(a),
		newSheetCopyCmd(a),
	)
	return cmd
}

func showSheet(a *app, cmd *cobra.Command) error {
	sess, closeStore, err := a.openSession(nil, nil)
	if err != nil {
		return err
	}
	defer closeStore()
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), sheetLine(sess.State().Sheet))
	return nil
}

func newSheetShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the linked sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSheet(a, cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newSheetSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set [url]",
		Short: "Link a sheet",
		Long:  "Link a sheet. A blank url is ignored and the current link is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				a.logger.Debug("blank sheet url ignored")
				return nil
			}
			sess, closeStore, err := a.openSession(nil, &statePrinter{out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer closeStore()
			return sess.SetSheetURL(cmd.Context(), args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newSheetClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the sheet link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := a.openSession(a.confirmer(yes), &statePrinter{out: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer closeStore()

			if !sess.State().Sheet.IsSet() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), sheetLine(sess.State().Sheet))
				return nil
			}
			cleared, err := sess.ClearSheetURL(cmd.Context())
			if err != nil {
				return err
			}
			if !cleared {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking")
	return cmd
}

func newSheetOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the linked sheet in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := a.openSession(nil, nil)
			if err != nil {
				return err
			}
			defer closeStore()
			return update.OpenLink(a.opener, sess.State().Sheet.URL)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func newSheetCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the sheet link to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := a.openSession(nil, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			link := sess.State().Sheet.URL
			if link == "" {
				return update.ErrNoSheetLink
			}
			if err := a.clipboard.WriteAll(link); err != nil {
				return fmt.Errorf("copy link: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "copied")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
