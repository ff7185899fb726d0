// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
	ColorCritical   color.Color
)

// Style exports.
var (
	// Text styles.
	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Word alignment segments.
	SegmentSameStyle    lipgloss.Style
	SegmentAddedStyle   lipgloss.Style
	SegmentRemovedStyle lipgloss.Style

	// Severity badges.
	SeverityLowStyle      lipgloss.Style
	SeverityMediumStyle   lipgloss.Style
	SeverityHighStyle     lipgloss.Style
	SeverityCriticalStyle lipgloss.Style

	// Triage view.
	TriageTitleStyle    lipgloss.Style
	TriageFilterStyle   lipgloss.Style
	TriageSelectedStyle lipgloss.Style
	TriageSectionStyle  lipgloss.Style
	TriageLabelStyle    lipgloss.Style
	TriageHelpStyle     lipgloss.Style
	StatusBarStyle      lipgloss.Style

	// Help dialog
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style
)

// ColorPool is used for deterministic color hashing of categories.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorCritical = p.Critical

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	SegmentSameStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	SegmentAddedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true).
		Underline(true)
	SegmentRemovedStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Strikethrough(true)

	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorBackground)
	SeverityLowStyle = badge.Background(ColorMuted)
	SeverityMediumStyle = badge.Background(ColorWarning)
	SeverityHighStyle = badge.Background(ColorError)
	SeverityCriticalStyle = badge.Background(ColorCritical)

	TriageTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	TriageFilterStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	TriageSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Bold(true)
	TriageSectionStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	TriageLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	TriageHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StatusBarStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground)

	HelpDialogModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorCritical,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
