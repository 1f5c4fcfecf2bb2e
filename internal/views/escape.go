package views

import (
	"strconv"
	"strings"
	"unicode"
)

// EscapeText makes user text safe to print on a terminal: control characters
// are written as Go escape sequences, so an embedded ESC shows up as \x1b
// instead of changing colours or moving the cursor.
func EscapeText(s string) string {
	if strings.IndexFunc(s, needsEscape) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if !needsEscape(r) {
			b.WriteRune(r)
			continue
		}
		q := strconv.QuoteRune(r)
		b.WriteString(q[1 : len(q)-1])
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
}

var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
	`!`, `\!`,
)

// EscapeMarkdown escapes characters that would otherwise start markdown or
// inline HTML.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(EscapeText(s))
}
