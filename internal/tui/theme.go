package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tonylturner/ddcdec/internal/ddc"
)

// Theme defines the color palette for the viewer.
type Theme struct {
	BgDark   lipgloss.Color
	BgAccent lipgloss.Color

	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color

	Border lipgloss.Color

	Accent  lipgloss.Color // blue
	Success lipgloss.Color // green
	Warning lipgloss.Color // amber
	Error   lipgloss.Color // red/pink
}

// DefaultTheme is a dark theme in Tokyo Night colors.
var DefaultTheme = Theme{
	BgDark:   lipgloss.Color("#1a1b26"),
	BgAccent: lipgloss.Color("#414868"),

	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),

	Border: lipgloss.Color("#414868"),

	Accent:  lipgloss.Color("#7aa2f7"),
	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Base     lipgloss.Style
	Dim      lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Box      lipgloss.Style

	KeyBinding lipgloss.Style
	KeyHint    lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style

	Categories map[ddc.Category]lipgloss.Style
}

// NewStyles creates a new Styles instance from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Base: lipgloss.NewStyle().Foreground(t.TextPrimary),
		Dim:  lipgloss.NewStyle().Foreground(t.TextDim),
		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(t.BgDark).
			Background(t.Accent),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		KeyBinding: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.TextDim),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Categories: map[ddc.Category]lipgloss.Style{
			ddc.CategoryAddress:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Width(8),
			ddc.CategoryRegister: lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Width(8),
			ddc.CategoryFields:   lipgloss.NewStyle().Foreground(t.Success).Bold(true).Width(8),
			ddc.CategoryDebug:    lipgloss.NewStyle().Foreground(t.TextDim).Width(8),
		},
	}
}

// DefaultStyles returns styles using the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// CategoryLabel renders a category name in its color.
func (s Styles) CategoryLabel(c ddc.Category) string {
	style, ok := s.Categories[c]
	if !ok {
		style = s.Dim.Width(8)
	}
	return style.Render(c.String())
}
