package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/alexanderramin/gantt/internal/timegrid"
	"github.com/alexanderramin/gantt/internal/wbs"
)

// FormatPlanSummary renders the title, span and per-row item counts.
func FormatPlanSummary(data domain.TimelineData) string {
	var b strings.Builder
	b.WriteString(Header(data.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n\n", Dim("Span"), DateSpan(data.StartDate, &data.EndDate))

	rows := make([][]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		items := data.ItemsForRow(r.ID)
		critical := 0
		for _, it := range items {
			if it.IsCritical {
				critical++
			}
		}
		rows = append(rows, []string{
			Dim(r.ID),
			r.Label,
			strconv.Itoa(len(items)),
			strconv.Itoa(critical),
			strconv.Itoa(wbs.Count(r.WBS)),
		})
	}
	b.WriteString(RenderTable([]string{"ROW", "LABEL", "ITEMS", "CRITICAL", "WBS"}, rows))
	return b.String()
}

// FormatGrid renders every header band and the gridlines of a grid.
func FormatGrid(g timegrid.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s px/day  %s %s px\n",
		Dim("Range"), DateSpan(g.Start, &g.End),
		Dim("Zoom"), FormatPx(g.PixelsPerDay),
		Dim("Width"), FormatPx(g.Width))

	for _, band := range g.Bands {
		b.WriteString("\n")
		b.WriteString(Header(string(band.Granularity)))
		b.WriteString("\n")
		rows := make([][]string, 0, len(band.Segments))
		for _, s := range band.Segments {
			label := s.Label
			if !s.ShowLabel {
				label = Dim(label + " (hidden)")
			}
			rows = append(rows, []string{
				label,
				dategrid.FormatDate(s.Start),
				strconv.Itoa(s.Days),
				FormatPx(s.X),
				FormatPx(s.Width),
			})
		}
		b.WriteString(RenderTable([]string{"LABEL", "START", "DAYS", "X", "WIDTH"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(Header("Gridlines"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(g.Lines)+1)
	for _, l := range g.Lines {
		rows = append(rows, []string{string(l.Kind), dategrid.FormatDate(l.Date), FormatPx(l.X)})
	}
	today := dategrid.FormatDate(g.Today.Date)
	if !g.TodayVisible() {
		today += Dim(" (outside range)")
	}
	rows = append(rows, []string{StyleYellow.Render(string(g.Today.Kind)), today, FormatPx(g.Today.X)})
	b.WriteString(RenderTable([]string{"KIND", "DATE", "X"}, rows))
	return b.String()
}

// FormatLayout renders the placed rows, item shapes and skipped items.
func FormatLayout(l geometry.ChartLayout, data domain.TimelineData) string {
	var b strings.Builder
	b.WriteString(Header("Rows"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(l.Rows))
	for _, r := range l.Rows {
		rows = append(rows, []string{r.Label, FormatPx(r.Y), FormatPx(r.Height)})
	}
	b.WriteString(RenderTable([]string{"ROW", "Y", "HEIGHT"}, rows))

	b.WriteString("\n")
	b.WriteString(Header("Items"))
	b.WriteString("\n")
	rows = rows[:0]
	for _, p := range l.Items {
		it, _, _ := data.ItemByID(p.ItemID)
		rows = append(rows, []string{
			it.Label,
			KindBadge(it.Kind, it.IsCritical),
			p.Kind.String(),
			FormatPx(p.X),
			FormatPx(p.Width),
			FormatPx(p.CenterY),
		})
	}
	b.WriteString(RenderTable([]string{"ITEM", "KIND", "SHAPE", "X", "WIDTH", "Y"}, rows))

	if len(l.Problems) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Skipped"))
		b.WriteString("\n")
		for _, p := range l.Problems {
			fmt.Fprintf(&b, "%s %s: %v\n", StyleRed.Render("✖"), p.ItemID, p.Err)
		}
	}
	return b.String()
}

// FormatValidation renders a validation verdict for a file.
func FormatValidation(path string, errs []error) string {
	if len(errs) == 0 {
		return fmt.Sprintf("%s %s is valid\n", StyleGreen.Render("✔"), Bold(path))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s has %d problem(s)\n", StyleRed.Render("✖"), Bold(path), len(errs))
	for _, err := range errs {
		fmt.Fprintf(&b, "  %s %v\n", Dim("-"), err)
	}
	return b.String()
}

// FormatItemEdit renders an item after an explicit edit next to its prior
// label and dates.
func FormatItemEdit(before, after domain.TimelineItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔"), Bold(after.Label), KindBadge(after.Kind, after.IsCritical))
	if before.Label != after.Label {
		fmt.Fprintf(&b, "  %s %s\n", Dim("was   "), before.Label)
	}
	fmt.Fprintf(&b, "  %s %s\n", Dim("before"), DateSpan(before.Date, before.EndDate))
	fmt.Fprintf(&b, "  %s %s\n", Dim("after "), DateSpan(after.Date, after.EndDate))
	return b.String()
}

// FormatDragResult renders an item's dates before and after a gesture.
func FormatDragResult(before, after domain.TimelineItem) string {
	changed := Dim("(unchanged)")
	if !before.Date.Equal(after.Date) || !sameEnd(before.EndDate, after.EndDate) {
		changed = StyleGreen.Render("✔ moved")
	}
	return fmt.Sprintf("%s %s\n  %s %s\n  %s %s\n",
		Bold(after.Label), changed,
		Dim("before"), DateSpan(before.Date, before.EndDate),
		Dim("after "), DateSpan(after.Date, after.EndDate))
}

func sameEnd(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// FormatWBS renders a row's breakdown tree with its completion bar.
func FormatWBS(row domain.TimelineRow, expanded wbs.ExpandedSet) string {
	var b strings.Builder
	b.WriteString(Header(row.Label))
	b.WriteString("\n")
	if len(row.WBS) == 0 {
		b.WriteString(Dim("No tasks yet. Run \"gantt wbs generate " + row.ID + "\" to draft a breakdown.\n"))
		return b.String()
	}
	b.WriteString(RenderTree(WBSTreeItems(wbs.Visible(row.WBS, expanded), -1)))
	done, total := WBSProgress(row.WBS)
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	fmt.Fprintf(&b, "\n%s %s %s\n", Dim("Done"), RenderProgress(pct, 20), Dim(fmt.Sprintf("(%d/%d tasks)", done, total)))
	return b.String()
}
