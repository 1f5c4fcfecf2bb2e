package views

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

type ExportData struct {
	Title    string
	Items    []TaskItemData
	SheetURL string
}

var htmlTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Items}}
<ul id="task-list">
{{- range .Items}}
<li class="task-item{{if .Completed}} completed{{end}}" data-id="{{.ID}}"><input type="checkbox" disabled{{if .Completed}} checked{{end}}> <span class="task-text">{{.Text}}</span></li>
{{- end}}
</ul>
{{- else}}
<p id="empty-tasks">No tasks yet.</p>
{{- end}}
{{- if .SheetURL}}
<p id="sheet-link"><a href="{{.SheetURL}}" rel="noopener noreferrer" target="_blank">Open sheet</a></p>
{{- else}}
<p id="sheet-empty-state">No sheet linked.</p>
{{- end}}
</body>
</html>
`))

// RenderHTML renders a standalone page. Task text and the sheet URL are
// escaped by html/template, so markup in either is shown as text.
func RenderHTML(data ExportData) (string, error) {
	if data.Title == "" {
		data.Title = "Tasks"
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func RenderMarkdownTasks(data ExportData) string {
	title := data.Title
	if title == "" {
		title = "Tasks"
	}
	var b strings.Builder
	b.WriteString("# " + EscapeMarkdown(title) + "\n\n")
	if len(data.Items) == 0 {
		b.WriteString("_No tasks yet._\n")
	}
	for _, item := range data.Items {
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%d. %s %s\n", item.Position, box, EscapeMarkdown(item.Text)))
	}
	if data.SheetURL != "" {
		b.WriteString(fmt.Sprintf("\nSheet: <%s>\n", strings.NewReplacer("<", "%3C", ">", "%3E", " ", "%20").Replace(data.SheetURL)))
	}
	return b.String()
}
