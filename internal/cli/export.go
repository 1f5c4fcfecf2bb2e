package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sandeepkv93/guia/internal/model"
	"github.com/sandeepkv93/guia/internal/views"
	"github.com/spf13/cobra"
)

const (
	formatMarkdown = "md"
	formatHTML     = "html"
	formatJSON     = "json"
)

type exportDocument struct {
	Tasks    model.TaskList `json:"tasks"`
	SheetURL string         `json:"sheetUrl,omitempty"`
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as markdown, html or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeStore, err := a.openSession(nil, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			body, err := renderExport(sess.State(), format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.logger.Info("exported", "format", format, "path", output)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatMarkdown, "Export format (md, html, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func renderExport(state model.AppState, format string) (string, error) {
	data := views.ExportData{
		Items:    views.TaskItems(state.Tasks),
		SheetURL: state.Sheet.URL,
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatMarkdown, "markdown":
		return views.RenderMarkdownTasks(data), nil
	case formatHTML:
		return views.RenderHTML(data)
	case formatJSON:
		doc := exportDocument{Tasks: state.Tasks.Sorted(), SheetURL: state.Sheet.URL}
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode export: %w", err)
		}
		return string(raw) + "\n", nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
