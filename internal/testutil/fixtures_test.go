package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	row := NewTestRow("Build", WithRowID("r1"),
		WithWBS(NewTestWBSItem("Code", "2024-01-01", "2024-01-31",
			WithSubTasks(NewTestWBSItem("API", "2024-01-01", "2024-01-15", WithStatus(domain.WBSDone))))))
	bar := NewTestItem("r1", "Dev", "2024-01-01", WithRange("2024-01-31"), WithCritical())
	data := NewTestTimeline("Pilot", "2024-01-01", "2024-06-30", []domain.TimelineRow{row}, []domain.TimelineItem{bar})

	assert.Empty(t, data.Validate())
	assert.True(t, bar.IsRange())
	assert.NotEmpty(t, bar.ID)
	assert.True(t, row.WBS[0].HasSubTasks())
	assert.Equal(t, domain.WBSPending, row.WBS[0].Status)
}

func TestDemoTimeline(t *testing.T) {
	data := DemoTimeline(t)
	assert.Len(t, data.Rows, 4)
	assert.Empty(t, data.Validate())
}

func TestFakes(t *testing.T) {
	ctx := context.Background()
	gen := &FakeBreakdown{Items: []domain.WBSItem{NewTestWBSItem("A", "2024-01-01", "2024-01-02")}}
	got, err := gen.GenerateBreakdown(ctx, "Design", nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []string{"Design"}, gen.Calls())

	boom := errors.New("boom")
	_, err = (&FakeParser{Err: boom}).ParseImage(ctx, []byte("png"))
	assert.ErrorIs(t, err, boom)
}
