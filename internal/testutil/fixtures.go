// Package testutil builds timeline fixtures and fake collaborators for tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/google/uuid"
)

// Item options
type ItemOption func(*domain.TimelineItem)

func WithItemID(id string) ItemOption {
	return func(i *domain.TimelineItem) { i.ID = id }
}

// WithRange turns the item into a range ending on end (YYYY-MM-DD).
func WithRange(end string) ItemOption {
	return func(i *domain.TimelineItem) {
		i.Kind = domain.ItemRange
		i.EndDate = domain.DatePtr(domain.MustDate(end))
	}
}

func WithKind(k domain.ItemKind) ItemOption {
	return func(i *domain.TimelineItem) { i.Kind = k }
}

func WithCritical() ItemOption {
	return func(i *domain.TimelineItem) { i.IsCritical = true }
}

func WithColor(c string) ItemOption {
	return func(i *domain.TimelineItem) { i.Color = c }
}

// NewTestItem returns a milestone on date unless options say otherwise.
func NewTestItem(rowID, label, date string, opts ...ItemOption) domain.TimelineItem {
	it := domain.TimelineItem{
		ID:    uuid.New().String(),
		RowID: rowID,
		Label: label,
		Date:  domain.MustDate(date),
		Kind:  domain.ItemMilestone,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// Row options
type RowOption func(*domain.TimelineRow)

func WithRowID(id string) RowOption {
	return func(r *domain.TimelineRow) { r.ID = id }
}

func WithHeight(h int) RowOption {
	return func(r *domain.TimelineRow) { r.Height = h }
}

func WithWBS(nodes ...domain.WBSItem) RowOption {
	return func(r *domain.TimelineRow) { r.WBS = nodes }
}

func NewTestRow(label string, opts ...RowOption) domain.TimelineRow {
	r := domain.TimelineRow{
		ID:     uuid.New().String(),
		Label:  label,
		Height: domain.DefaultRowHeight,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WBS options
type WBSOption func(*domain.WBSItem)

func WithNodeID(id string) WBSOption {
	return func(n *domain.WBSItem) { n.ID = id }
}

func WithStatus(s domain.WBSStatus) WBSOption {
	return func(n *domain.WBSItem) { n.Status = s }
}

func WithOwner(owner string) WBSOption {
	return func(n *domain.WBSItem) { n.Owner = owner }
}

func WithSubTasks(children ...domain.WBSItem) WBSOption {
	return func(n *domain.WBSItem) { n.SubTasks = children }
}

func NewTestWBSItem(name, start, end string, opts ...WBSOption) domain.WBSItem {
	n := domain.WBSItem{
		ID:        uuid.New().String(),
		TaskName:  name,
		StartDate: domain.MustDate(start),
		EndDate:   domain.MustDate(end),
		Status:    domain.WBSPending,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// NewTestTimeline assembles a plan spanning start..end.
func NewTestTimeline(title, start, end string, rows []domain.TimelineRow, items []domain.TimelineItem) domain.TimelineData {
	return domain.TimelineData{
		Title:     title,
		StartDate: domain.MustDate(start),
		EndDate:   domain.MustDate(end),
		Rows:      rows,
		Items:     items,
	}
}

// DemoTimeline returns the embedded demo plan.
func DemoTimeline(t *testing.T) domain.TimelineData {
	t.Helper()
	data, err := importer.Demo()
	if err != nil {
		t.Fatalf("loading demo plan: %v", err)
	}
	return *data
}

// FakeBreakdown is a scripted BreakdownGenerator. Calls are recorded by
// phase label.
type FakeBreakdown struct {
	mu    sync.Mutex
	Items []domain.WBSItem
	Err   error
	Delay time.Duration
	calls []string
}

func (f *FakeBreakdown) GenerateBreakdown(ctx context.Context, phaseLabel string, _ []domain.TimelineItem) ([]domain.WBSItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, phaseLabel)
	f.mu.Unlock()
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return domain.CloneWBS(f.Items), nil
}

func (f *FakeBreakdown) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// FakeParser is a scripted ImageParser.
type FakeParser struct {
	Data *domain.TimelineData
	Err  error
	Seen [][]byte
}

func (f *FakeParser) ParseImage(_ context.Context, image []byte) (*domain.TimelineData, error) {
	f.Seen = append(f.Seen, image)
	if f.Err != nil || f.Data == nil {
		return nil, f.Err
	}
	c := f.Data.Clone()
	return &c, nil
}
