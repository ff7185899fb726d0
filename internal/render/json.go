package render

import (
	"bytes"
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/redline/internal/core/styles"
)

// ColorJSON pretty-prints JSON bytes with theme-aware syntax coloring. Invalid
// JSON is returned unchanged.
func ColorJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	var (
		out      strings.Builder
		raw      = buf.String()
		strStyle = lipgloss.NewStyle().Foreground(styles.ColorSuccess)
		numStyle = lipgloss.NewStyle().Foreground(styles.ColorWarning)
		litStyle = lipgloss.NewStyle().Foreground(styles.ColorSecondary)
	)

	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := stringEnd(raw, i)
			str := raw[i : end+1]
			// keys are strings followed by a colon
			if rest := strings.TrimLeft(raw[end+1:], " \t"); strings.HasPrefix(rest, ":") {
				out.WriteString(styles.TextPrimaryStyle.Render(str))
			} else {
				out.WriteString(strStyle.Render(str))
			}
			i = end + 1

		case ch == ':':
			out.WriteString(styles.TextMutedStyle.Render(":"))
			i++

		case ch >= '0' && ch <= '9' || ch == '-':
			end := i + 1
			for end < len(raw) && strings.IndexByte("0123456789.eE+-", raw[end]) >= 0 {
				end++
			}
			out.WriteString(numStyle.Render(raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"), strings.HasPrefix(raw[i:], "false"):
			lit := "true"
			if ch == 'f' {
				lit = "false"
			}
			out.WriteString(litStyle.Render(lit))
			i += len(lit)

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(styles.TextErrorStyle.Render("null"))
			i += 4

		case strings.IndexByte("{}[]", ch) >= 0:
			out.WriteString(styles.TextForegroundStyle.Render(string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// stringEnd returns the index of the closing quote for the JSON string that
// starts at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
