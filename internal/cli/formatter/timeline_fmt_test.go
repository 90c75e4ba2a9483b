package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/geometry"
	"github.com/alexanderramin/gantt/internal/timegrid"
	"github.com/alexanderramin/gantt/internal/wbs"
	"github.com/stretchr/testify/assert"
)

func wbsForest() []domain.WBSItem {
	d := domain.MustDate
	return []domain.WBSItem{
		{ID: "a", TaskName: "Research", StartDate: d("2024-01-01"), EndDate: d("2024-01-10"), Owner: "PM",
			SubTasks: []domain.WBSItem{
				{ID: "a1", TaskName: "Interviews", StartDate: d("2024-01-01"), EndDate: d("2024-01-05"), Status: domain.WBSDone},
				{ID: "a2", TaskName: "Synthesis", StartDate: d("2024-01-06"), EndDate: d("2024-01-10"), Status: domain.WBSInProgress},
			}},
		{ID: "b", TaskName: "Spec", StartDate: d("2024-01-11"), EndDate: d("2024-01-20"), Status: domain.WBSPending},
	}
}

func TestRenderTree_WBS(t *testing.T) {
	forest := wbsForest()
	rows := wbs.Visible(forest, wbs.NewExpandedSet("a"))
	out := stripANSI(RenderTree(WBSTreeItems(rows, 1)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "├─ ▾ Research"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "│  ├─   ✔ Interviews"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "│  └─   ▶ Synthesis"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "└─   Spec"), lines[3])
	assert.Contains(t, lines[0], "[ 24/1/1-24/1/10 · PM ]")

	collapsed := stripANSI(RenderTree(WBSTreeItems(wbs.Visible(forest, wbs.NewExpandedSet()), -1)))
	assert.Contains(t, collapsed, "▸ Research")
	assert.NotContains(t, collapsed, "Interviews")
	assert.Empty(t, RenderTree(nil))
}

func TestWBSProgress(t *testing.T) {
	done, total := WBSProgress(wbsForest())
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)
}

func TestFormatWBS(t *testing.T) {
	row := domain.TimelineRow{ID: "r1", Label: "Discovery", WBS: wbsForest()}
	out := stripANSI(FormatWBS(row, wbs.AutoExpand(wbs.NewExpandedSet(), row.WBS)))
	assert.Contains(t, out, "DISCOVERY")
	assert.Contains(t, out, "Interviews")
	assert.Contains(t, out, "(1/3 tasks)")

	empty := stripANSI(FormatWBS(domain.TimelineRow{ID: "r2", Label: "QA"}, wbs.NewExpandedSet()))
	assert.Contains(t, empty, `gantt wbs generate r2`)
}

func TestFormatGrid(t *testing.T) {
	data := chartData()
	view := domain.ViewConfig{PixelsPerDay: 2, Granularities: domain.NewGranularitySet(domain.GranularityMonth)}
	out := stripANSI(FormatGrid(timegrid.Build(data.StartDate, data.EndDate, view, domain.MustDate("2025-01-01"))))

	assert.Contains(t, out, "Width 120 px")
	assert.Contains(t, out, "MONTH")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "2024-02-01")
	assert.Contains(t, out, "(outside range)")
}

func TestFormatLayout(t *testing.T) {
	data := chartData()
	data.Items = append(data.Items, domain.TimelineItem{ID: "ghost", RowID: "nope", Label: "Ghost", Date: data.StartDate})
	out := stripANSI(FormatLayout(geometry.Layout(data, domain.DefaultViewConfig()), data))

	assert.Contains(t, out, "ROWS")
	assert.Contains(t, out, "Dev")
	assert.Contains(t, out, "▬ range")
	assert.Contains(t, out, "SKIPPED")
	assert.Contains(t, out, "ghost")
}

func TestFormatValidation(t *testing.T) {
	assert.Contains(t, stripANSI(FormatValidation("plan.json", nil)), "plan.json is valid")

	out := stripANSI(FormatValidation("plan.json", []error{errors.New("rows[0].id is required")}))
	assert.Contains(t, out, "has 1 problem(s)")
	assert.Contains(t, out, "- rows[0].id is required")
}

func TestFormatDragResult(t *testing.T) {
	before := chartData().Items[0]
	after := before.Clone()
	assert.Contains(t, stripANSI(FormatDragResult(before, after)), "(unchanged)")

	after.Date = domain.MustDate("2024-01-13")
	end := domain.MustDate("2024-01-23")
	after.EndDate = &end
	out := stripANSI(FormatDragResult(before, after))
	assert.Contains(t, out, "moved")
	assert.Contains(t, out, "2024-01-13 → 2024-01-23")
}
