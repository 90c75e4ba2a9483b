package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(1).
		PaddingRight(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n" + content)
	}
	return boxStyle.Render(content)
}

// DateSpan renders "2024-01-01 → 2024-03-31", or a single date when end is nil.
func DateSpan(start time.Time, end *time.Time) string {
	if end == nil {
		return dategrid.FormatDate(start)
	}
	return fmt.Sprintf("%s %s %s", dategrid.FormatDate(start), Dim("→"), dategrid.FormatDate(*end))
}

// ShortSpan renders the compact chart label form, e.g. "24/1/1-24/3/31".
func ShortSpan(start time.Time, end *time.Time) string {
	if end == nil {
		return dategrid.FormatShort(start)
	}
	return dategrid.FormatShort(start) + "-" + dategrid.FormatShort(*end)
}

// FormatPx renders a layout coordinate with at most two decimals.
func FormatPx(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Truncate cuts s to at most width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 {
		return "…"
	}
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// PadRight pads s with spaces to exactly width visible cells, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
