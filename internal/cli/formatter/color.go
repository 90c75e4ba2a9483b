package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorGrid   = lipgloss.Color("#504945")
	ColorSelect = lipgloss.Color("#3c3836")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleGrid       = lipgloss.NewStyle().Foreground(ColorGrid)
)

// StatusColor returns the style for a WBS task status.
func StatusColor(status domain.WBSStatus) lipgloss.Style {
	switch status {
	case domain.WBSDone:
		return StyleGreen
	case domain.WBSInProgress:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StatusPill returns a colored indicator such as "● In Progress".
func StatusPill(status domain.WBSStatus) string {
	switch status {
	case domain.WBSDone:
		return StyleGreen.Render("✔ Done")
	case domain.WBSInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.WBSPending:
		return StyleDim.Render("○ Pending")
	default:
		return StyleDim.Render(string(status))
	}
}

// KindBadge renders the item kind with its glyph.
func KindBadge(kind domain.ItemKind, critical bool) string {
	switch {
	case kind == domain.ItemRange:
		return StyleBlue.Render("▬ range")
	case critical:
		return StyleRed.Render("★ " + string(kind))
	default:
		return StylePurple.Render("◆ " + string(kind))
	}
}

// ItemStyle returns the bar style for an item. A hex color stored on the
// item wins over the palette; critical items are red.
func ItemStyle(color string, critical bool) lipgloss.Style {
	if critical {
		return StyleRed
	}
	if strings.HasPrefix(color, "#") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return StyleBlue
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
