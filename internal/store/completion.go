package store

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrEmptyBreakdown marks a breakdown that produced no tasks.
var ErrEmptyBreakdown = errors.New("breakdown returned no tasks")

// ImportResult is the outcome of an image import running in the background.
type ImportResult struct {
	Data *domain.TimelineData
	Err  error
}

// CompleteImport replaces the whole model with a successful, valid result.
// On failure the prior model is kept and LastError is set. Results apply in
// arrival order, so the later of two racing imports wins.
func (s *Store) CompleteImport(res ImportResult) bool {
	if res.Err != nil {
		s.fail(fmt.Errorf("import failed: %w", res.Err))
		return false
	}
	if res.Data == nil {
		s.fail(errors.New("import failed: no data"))
		return false
	}
	if errs := res.Data.Validate(); len(errs) > 0 {
		s.fail(fmt.Errorf("import failed: %w", errors.Join(errs...)))
		return false
	}
	s.data = res.Data.Clone()
	s.lastErr = nil
	s.emit(Change{Kind: ChangeImport})
	return true
}

// BreakdownResult is the outcome of a WBS generation for one row.
type BreakdownResult struct {
	RowID string
	Items []domain.WBSItem
	Err   error
}

// CompleteBreakdown replaces the row's forest with a successful, non-empty
// result. It applies whether or not the row is still shown. Failures and
// empty results leave the forest unchanged.
func (s *Store) CompleteBreakdown(res BreakdownResult) bool {
	if res.Err != nil {
		s.fail(fmt.Errorf("breakdown for %s failed: %w", res.RowID, res.Err))
		return false
	}
	if len(res.Items) == 0 {
		s.fail(fmt.Errorf("breakdown for %s: %w", res.RowID, ErrEmptyBreakdown))
		return false
	}
	_, idx, ok := s.data.RowByID(res.RowID)
	if !ok {
		s.fail(fmt.Errorf("breakdown for %s: %w", res.RowID, ErrUnknownRow))
		return false
	}
	s.data.Rows[idx].WBS = domain.CloneWBS(res.Items)
	s.lastErr = nil
	s.emit(Change{Kind: ChangeBreakdown, RowID: res.RowID})
	return true
}
