package geometry

import (
	"errors"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = domain.MustDate("2024-07-01")

func TestForItem_Milestone(t *testing.T) {
	item := domain.TimelineItem{ID: "m", Kind: domain.ItemMilestone, Date: domain.MustDate("2024-07-22"), IsCritical: true}

	s, err := ForItem(item, start, 3)
	require.NoError(t, err)
	assert.Equal(t, ShapePoint, s.Kind)
	assert.Equal(t, 63.0, s.X)
	assert.Zero(t, s.Width)
	assert.True(t, s.Critical)
}

func TestForItem_TaskIgnoresEndDate(t *testing.T) {
	item := domain.TimelineItem{ID: "t", Kind: domain.ItemTask, Date: domain.MustDate("2024-07-22"),
		EndDate: domain.DatePtr(domain.MustDate("2024-07-01"))}

	s, err := ForItem(item, start, 3)
	require.NoError(t, err)
	assert.Equal(t, ShapePoint, s.Kind)
}

func TestForItem_Range(t *testing.T) {
	item := domain.TimelineItem{ID: "s3", Kind: domain.ItemRange,
		Date: domain.MustDate("2025-03-01"), EndDate: domain.DatePtr(domain.MustDate("2025-04-16"))}

	s, err := ForItem(item, start, 3)
	require.NoError(t, err)
	assert.Equal(t, ShapeBar, s.Kind)
	assert.Equal(t, 243.0*3, s.X)
	assert.Equal(t, 138.0, s.Width)
	assert.Equal(t, s.X+138, s.EndX())
}

func TestForItem_InvalidRanges(t *testing.T) {
	inverted := domain.TimelineItem{ID: "bad", Kind: domain.ItemRange,
		Date: domain.MustDate("2024-08-10"), EndDate: domain.DatePtr(domain.MustDate("2024-08-01"))}
	_, err := ForItem(inverted, start, 3)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	missing := domain.TimelineItem{ID: "open", Kind: domain.ItemRange, Date: domain.MustDate("2024-08-10")}
	_, err = ForItem(missing, start, 3)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestForItem_SameDayRangeHasZeroWidth(t *testing.T) {
	d := domain.MustDate("2024-08-10")
	s, err := ForItem(domain.TimelineItem{ID: "z", Kind: domain.ItemRange, Date: d, EndDate: &d}, start, 3)
	require.NoError(t, err)
	assert.Equal(t, ShapeBar, s.Kind)
	assert.Zero(t, s.Width)
}

func layoutData() domain.TimelineData {
	return domain.TimelineData{
		StartDate: start,
		EndDate:   domain.MustDate("2024-12-31"),
		Rows: []domain.TimelineRow{
			{ID: "ms", Label: "Milestones", Height: 120},
			{ID: "dev", Label: "Development", Height: 100},
		},
		Items: []domain.TimelineItem{
			{ID: "m1", RowID: "ms", Kind: domain.ItemMilestone, Date: domain.MustDate("2024-07-22")},
			{ID: "r1", RowID: "dev", Kind: domain.ItemRange, Date: domain.MustDate("2024-08-01"), EndDate: domain.DatePtr(domain.MustDate("2024-08-31"))},
			{ID: "bad", RowID: "dev", Kind: domain.ItemRange, Date: domain.MustDate("2024-09-10"), EndDate: domain.DatePtr(domain.MustDate("2024-09-01"))},
			{ID: "orphan", RowID: "gone", Kind: domain.ItemTask, Date: domain.MustDate("2024-09-10")},
		},
	}
}

func TestLayout_StacksRowsAndSkipsProblems(t *testing.T) {
	l := Layout(layoutData(), domain.ViewConfig{PixelsPerDay: 3})

	require.Len(t, l.Rows, 2)
	assert.Equal(t, 0.0, l.Rows[0].Y)
	assert.Equal(t, 120.0, l.Rows[1].Y)
	assert.Equal(t, 220.0, l.Height)

	require.Len(t, l.Items, 2)
	m, ok := l.Item("m1")
	require.True(t, ok)
	assert.Equal(t, 60.0, m.CenterY)
	r, ok := l.Item("r1")
	require.True(t, ok)
	assert.Equal(t, 170.0, r.CenterY)
	assert.Equal(t, 90.0, r.Width)

	require.Len(t, l.Problems, 2)
	assert.Equal(t, "bad", l.Problems[0].ItemID)
	assert.True(t, errors.Is(l.Problems[0].Err, ErrInvalidRange))
	assert.Equal(t, "orphan", l.Problems[1].ItemID)
	assert.True(t, errors.Is(l.Problems[1].Err, ErrUnknownRow))
}

func TestLayoutWith_CustomRowHeight(t *testing.T) {
	l := LayoutWith(layoutData(), 1, func(domain.TimelineRow) float64 { return 3 })

	assert.Equal(t, 6.0, l.Height)
	band, ok := l.RowAt(4)
	require.True(t, ok)
	assert.Equal(t, "dev", band.RowID)
	_, ok = l.RowAt(6)
	assert.False(t, ok)
}

func TestLayout_DefaultsZeroHeight(t *testing.T) {
	d := layoutData()
	d.Rows[0].Height = 0
	l := Layout(d, domain.ViewConfig{PixelsPerDay: 1})
	assert.Equal(t, float64(domain.DefaultRowHeight), l.Rows[0].Height)
}

func TestHitTest(t *testing.T) {
	// r1 spans x 93..183 in the dev row (y 120..220).
	l := Layout(layoutData(), domain.ViewConfig{PixelsPerDay: 3})

	tests := []struct {
		name   string
		x, y   float64
		want   string
		handle Handle
		hit    bool
	}{
		{"milestone", 64, 10, "m1", HandleBody, true},
		{"milestone miss", 70, 10, "", HandleBody, false},
		{"bar body", 140, 150, "r1", HandleBody, true},
		{"bar start", 94, 150, "r1", HandleStart, true},
		{"bar end", 181, 150, "r1", HandleEnd, true},
		{"past end", 190, 150, "", HandleBody, false},
		{"below rows", 140, 500, "", HandleBody, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := l.HitTest(tt.x, tt.y, 3)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.Equal(t, tt.want, h.ItemID)
				assert.Equal(t, tt.handle, h.Handle)
			}
		})
	}
}

func TestHitRow_NarrowBarIsAllBody(t *testing.T) {
	d := layoutData()
	d.Items[1].EndDate = domain.DatePtr(domain.MustDate("2024-08-02"))
	l := Layout(d, domain.ViewConfig{PixelsPerDay: 3})

	h, ok := l.HitRow("dev", 93, 3)
	require.True(t, ok)
	assert.Equal(t, HandleBody, h.Handle)
}
