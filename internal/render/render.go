// Package render turns alignments and triage aggregates into styled terminal
// text shared by the CLI commands and the TUI.
package render

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/redline/internal/core/align"
	"github.com/colonyops/redline/internal/core/comparison"
	"github.com/colonyops/redline/internal/core/styles"
)

// collapseContext is the number of SAME words kept on each side of a
// collapsed run.
const collapseContext = 2

// Segments renders a segment sequence, styling each word by kind. When
// collapse is set, long runs of SAME words are shortened to their edges.
func Segments(segs []align.Segment, collapse bool) string {
	var b strings.Builder

	for i := 0; i < len(segs); i++ {
		if collapse && segs[i].Kind == align.KindSame {
			end := i
			for end < len(segs) && segs[end].Kind == align.KindSame {
				end++
			}
			if end-i > 2*collapseContext+1 {
				writeSegments(&b, segs[i:i+collapseContext])
				b.WriteString(styles.TextMutedStyle.Render("… "))
				writeSegments(&b, segs[end-collapseContext:end])
				i = end - 1
				continue
			}
		}
		writeSegments(&b, segs[i:i+1])
	}

	return strings.TrimRight(b.String(), " ")
}

func writeSegments(b *strings.Builder, segs []align.Segment) {
	for _, s := range segs {
		b.WriteString(SegmentStyle(s.Kind).Render(s.Word()))
		b.WriteString(" ")
	}
}

// SegmentStyle returns the style for a segment kind.
func SegmentStyle(k align.Kind) lipgloss.Style {
	switch k {
	case align.KindAdded:
		return styles.SegmentAddedStyle
	case align.KindRemoved:
		return styles.SegmentRemovedStyle
	default:
		return styles.SegmentSameStyle
	}
}

// SeverityStyle returns the badge style for a severity.
func SeverityStyle(sev comparison.Severity) lipgloss.Style {
	switch sev {
	case comparison.SeverityCritical:
		return styles.SeverityCriticalStyle
	case comparison.SeverityHigh:
		return styles.SeverityHighStyle
	case comparison.SeverityMedium:
		return styles.SeverityMediumStyle
	default:
		return styles.SeverityLowStyle
	}
}

// SeverityBadge renders a severity as an upper-case badge.
func SeverityBadge(sev comparison.Severity) string {
	label := strings.ToUpper(string(sev))
	if label == "" {
		label = "?"
	}
	return SeverityStyle(sev).Render(label)
}

// SeverityCounts renders counts from most to least severe. Severities missing
// from counts are skipped.
func SeverityCounts(counts map[comparison.Severity]int) string {
	sevs := comparison.Severities()
	parts := make([]string, 0, len(sevs))
	for i := len(sevs) - 1; i >= 0; i-- {
		n, ok := counts[sevs[i]]
		if !ok {
			continue
		}
		parts = append(parts, SeverityStyle(sevs[i]).Render(fmt.Sprintf("%s %d", sevs[i], n)))
	}
	if len(parts) == 0 {
		return styles.TextMutedStyle.Render("no findings")
	}
	return strings.Join(parts, " ")
}

// Markdown renders md for a terminal of the given width, falling back to the
// raw text if rendering fails.
func Markdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return md
	}

	return strings.Trim(rendered, "\n")
}
