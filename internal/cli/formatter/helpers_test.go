package formatter

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSpans(t *testing.T) {
	start := domain.MustDate("2024-07-01")
	end := domain.DatePtr(domain.MustDate("2024-09-30"))

	assert.Equal(t, "2024-07-01", stripANSI(DateSpan(start, nil)))
	assert.Equal(t, "2024-07-01 → 2024-09-30", stripANSI(DateSpan(start, end)))
	assert.Equal(t, "24/7/1", ShortSpan(start, nil))
	assert.Equal(t, "24/7/1-24/9/30", ShortSpan(start, end))
}

func TestFormatPx(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{63, "63"},
		{1.5, "1.5"},
		{2.126, "2.13"},
		{-3.1, "-3.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPx(tt.in))
	}
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "Design", Truncate("Design", 6))
	assert.Equal(t, "Desi…", Truncate("Design", 5))
	assert.Equal(t, "…", Truncate("Design", 1))
	assert.Equal(t, "", Truncate("Design", 0))

	assert.Equal(t, "QA    ", PadRight("QA", 6))
	assert.Equal(t, "Launc…", PadRight("Launch prep", 6))
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, stripANSI(StatusPill(domain.WBSDone)), "Done")
	assert.Contains(t, stripANSI(StatusPill(domain.WBSInProgress)), "In Progress")
	assert.Contains(t, stripANSI(StatusPill(domain.WBSPending)), "Pending")
	assert.Equal(t, "Blocked", stripANSI(StatusPill("Blocked")))
}

func TestKindBadge(t *testing.T) {
	assert.Equal(t, "▬ range", stripANSI(KindBadge(domain.ItemRange, true)))
	assert.Equal(t, "★ milestone", stripANSI(KindBadge(domain.ItemMilestone, true)))
	assert.Equal(t, "◆ task", stripANSI(KindBadge(domain.ItemTask, false)))
}

func TestRenderBox(t *testing.T) {
	out := stripANSI(RenderBox("Edit task", "content"))
	assert.Contains(t, out, "EDIT TASK")
	assert.Contains(t, out, "content")
	assert.Contains(t, out, "╭")

	assert.NotContains(t, stripANSI(RenderBox("", "content")), "EDIT")
}

func TestRenderTable(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ROW", "ITEMS"}, [][]string{{"Planning", "4"}, {"QA"}}))
	assert.Equal(t, "ROW       ITEMS\n────────  ─────\nPlanning  4\nQA        \n", out)
	assert.Empty(t, RenderTable(nil, nil))
}
