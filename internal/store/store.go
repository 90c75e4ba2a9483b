// Package store holds the authoritative timeline model. It is the only
// place where mutations are applied and is owned by a single goroutine.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/wbs"
)

var (
	ErrUnknownItem = errors.New("item not found")
	ErrUnknownRow  = errors.New("row not found")
	ErrUnknownNode = errors.New("wbs node not found")
	ErrInvalidEdit = errors.New("invalid edit")
)

// Store is not safe for concurrent use. Background work hands its results
// to the owning goroutine, which calls the Complete methods.
type Store struct {
	data      domain.TimelineData
	version   uint64
	lastErr   error
	listeners []Listener
}

// New returns a store holding a private copy of data.
func New(data domain.TimelineData) *Store {
	return &Store{data: data.Clone()}
}

// Snapshot returns a deep copy of the current model.
func (s *Store) Snapshot() domain.TimelineData {
	return s.data.Clone()
}

// Version increases on every applied change.
func (s *Store) Version() uint64 { return s.version }

func (s *Store) Title() string { return s.data.Title }

// ItemByID returns a copy of an item.
func (s *Store) ItemByID(id string) (domain.TimelineItem, bool) {
	it, _, ok := s.data.ItemByID(id)
	if !ok {
		return domain.TimelineItem{}, false
	}
	return it.Clone(), true
}

// CommitCandidate writes dates produced by a drag gesture. For point items
// endDate is ignored.
func (s *Store) CommitCandidate(itemID string, date time.Time, endDate *time.Time) error {
	it, idx, ok := s.data.ItemByID(itemID)
	if !ok {
		return fmt.Errorf("commit %q: %w", itemID, ErrUnknownItem)
	}

	newDate := domain.Day(date)
	changed := !newDate.Equal(it.Date)
	it.Date = newDate
	if it.IsRange() && endDate != nil {
		end := domain.Day(*endDate)
		if it.EndDate == nil || !end.Equal(*it.EndDate) {
			changed = true
		}
		it.EndDate = &end
	}
	if !changed {
		return nil
	}
	s.data.Items[idx] = it
	s.emit(Change{Kind: ChangeItemDates, ItemID: itemID, RowID: it.RowID})
	return nil
}

// ItemEdit is an explicit edit of an item. Nil fields are left untouched.
type ItemEdit struct {
	Label      *string
	Date       *time.Time
	EndDate    *time.Time
	IsCritical *bool
	Color      *string
}

// UpdateItem applies an explicit edit. Edits that would invert a range are
// rejected and leave the item unchanged.
func (s *Store) UpdateItem(id string, edit ItemEdit) error {
	it, idx, ok := s.data.ItemByID(id)
	if !ok {
		return fmt.Errorf("update %q: %w", id, ErrUnknownItem)
	}
	it = it.Clone()
	if edit.Label != nil {
		it.Label = *edit.Label
	}
	if edit.Date != nil {
		it.Date = domain.Day(*edit.Date)
	}
	if edit.EndDate != nil {
		it.EndDate = domain.DatePtr(*edit.EndDate)
	}
	if edit.IsCritical != nil {
		it.IsCritical = *edit.IsCritical
	}
	if edit.Color != nil {
		it.Color = *edit.Color
	}
	if it.IsRange() && it.EndDate != nil && it.EndDate.Before(it.Date) {
		return fmt.Errorf("update %q: %w: endDate %s is before date %s", id, ErrInvalidEdit,
			it.EndDate.Format(domain.DateLayout), it.Date.Format(domain.DateLayout))
	}
	s.data.Items[idx] = it
	s.emit(Change{Kind: ChangeItemEdit, ItemID: id, RowID: it.RowID})
	return nil
}

// RowWBS returns a copy of a row's forest.
func (s *Store) RowWBS(rowID string) ([]domain.WBSItem, bool) {
	r, _, ok := s.data.RowByID(rowID)
	if !ok {
		return nil, false
	}
	return domain.CloneWBS(r.WBS), true
}

// EditWBSNode merges p into one node of a row's forest. Edits that would put
// the end before the start are rejected and leave the forest unchanged.
func (s *Store) EditWBSNode(rowID, nodeID string, p wbs.Patch) error {
	r, _, ok := s.data.RowByID(rowID)
	if !ok {
		return fmt.Errorf("wbs %s: %w", rowID, ErrUnknownRow)
	}
	node, _, ok := wbs.Find(r.WBS, nodeID)
	if !ok {
		return fmt.Errorf("wbs %s/%s: %w", rowID, nodeID, ErrUnknownNode)
	}
	if n := p.Apply(node); n.EndDate.Before(n.StartDate) {
		return fmt.Errorf("wbs %s/%s: %w: endDate %s is before startDate %s", rowID, nodeID, ErrInvalidEdit,
			n.EndDate.Format(domain.DateLayout), n.StartDate.Format(domain.DateLayout))
	}
	return s.transformWBS(rowID, nodeID, wbs.Update(p), ChangeWBSEdit)
}

// DeleteWBSNode removes a node and its subtree.
func (s *Store) DeleteWBSNode(rowID, nodeID string) error {
	return s.transformWBS(rowID, nodeID, wbs.Delete, ChangeWBSDelete)
}

func (s *Store) transformWBS(rowID, nodeID string, op wbs.Op, kind ChangeKind) error {
	r, idx, ok := s.data.RowByID(rowID)
	if !ok {
		return fmt.Errorf("wbs %s: %w", rowID, ErrUnknownRow)
	}
	forest, ok := wbs.FindAndTransform(r.WBS, nodeID, op)
	if !ok {
		return fmt.Errorf("wbs %s/%s: %w", rowID, nodeID, ErrUnknownNode)
	}
	s.data.Rows[idx].WBS = forest
	s.emit(Change{Kind: kind, RowID: rowID, NodeID: nodeID})
	return nil
}

// LastError is the user-visible error from the latest failed completion.
func (s *Store) LastError() error { return s.lastErr }

// ClearError dismisses the error signal.
func (s *Store) ClearError() {
	if s.lastErr == nil {
		return
	}
	s.lastErr = nil
	s.emit(Change{Kind: ChangeErrorCleared})
}

func (s *Store) fail(err error) {
	s.lastErr = err
	s.emit(Change{Kind: ChangeError, Err: err})
}
