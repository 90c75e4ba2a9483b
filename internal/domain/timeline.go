package domain

import (
	"fmt"
	"time"
)

// DefaultRowHeight is used when imported rows carry no height.
const DefaultRowHeight = 100

// TimelineItem is a schedule entry placed on the time axis. Milestones and
// tasks are points at Date; ranges span Date..EndDate.
type TimelineItem struct {
	ID         string
	RowID      string
	Label      string
	Date       time.Time
	EndDate    *time.Time // required for ranges, ignored otherwise
	Kind       ItemKind
	IsCritical bool
	Color      string
}

// IsRange reports whether the item renders as a bar.
func (i TimelineItem) IsRange() bool {
	return i.Kind == ItemRange
}

// Clone returns a copy that shares no pointers with i.
func (i TimelineItem) Clone() TimelineItem {
	c := i
	if i.EndDate != nil {
		end := *i.EndDate
		c.EndDate = &end
	}
	return c
}

// TimelineRow is one project phase. Rows are drawn in slice order.
type TimelineRow struct {
	ID     string
	Label  string
	Height int
	WBS    []WBSItem
}

// TimelineData is the whole chart model.
type TimelineData struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Rows      []TimelineRow
	Items     []TimelineItem
}

// Clone deep-copies the data, including every WBS forest.
func (d TimelineData) Clone() TimelineData {
	c := TimelineData{
		Title:     d.Title,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Rows:      make([]TimelineRow, len(d.Rows)),
		Items:     make([]TimelineItem, len(d.Items)),
	}
	for i, r := range d.Rows {
		r.WBS = CloneWBS(r.WBS)
		c.Rows[i] = r
	}
	for i, it := range d.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// RowByID returns the row with the given id and its index.
func (d TimelineData) RowByID(id string) (TimelineRow, int, bool) {
	for i, r := range d.Rows {
		if r.ID == id {
			return r, i, true
		}
	}
	return TimelineRow{}, -1, false
}

// ItemByID returns the item with the given id and its index.
func (d TimelineData) ItemByID(id string) (TimelineItem, int, bool) {
	for i, it := range d.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return TimelineItem{}, -1, false
}

// ItemsForRow returns the items of a row in storage order.
func (d TimelineData) ItemsForRow(rowID string) []TimelineItem {
	var out []TimelineItem
	for _, it := range d.Items {
		if it.RowID == rowID {
			out = append(out, it)
		}
	}
	return out
}

// Validate reports every integrity violation in the model. Rendering
// tolerates these (the offending element is skipped), but imports reject them.
func (d TimelineData) Validate() []error {
	var errs []error

	if d.EndDate.Before(d.StartDate) {
		errs = append(errs, fmt.Errorf("endDate %s is before startDate %s",
			d.EndDate.Format(DateLayout), d.StartDate.Format(DateLayout)))
	}

	rowIDs := make(map[string]bool, len(d.Rows))
	for i, r := range d.Rows {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("rows[%d].id is required", i))
			continue
		}
		if rowIDs[r.ID] {
			errs = append(errs, fmt.Errorf("rows[%d].id: duplicate id %q", i, r.ID))
		}
		rowIDs[r.ID] = true
		for _, err := range ValidateWBS(r.WBS) {
			errs = append(errs, fmt.Errorf("rows[%d].wbs: %w", i, err))
		}
	}

	itemIDs := make(map[string]bool, len(d.Items))
	for i, it := range d.Items {
		prefix := fmt.Sprintf("items[%d]", i)
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if itemIDs[it.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, it.ID))
		}
		itemIDs[it.ID] = true

		if !rowIDs[it.RowID] {
			errs = append(errs, fmt.Errorf("%s.rowId: row %q not found", prefix, it.RowID))
		}
		if it.Kind == ItemRange {
			if it.EndDate == nil {
				errs = append(errs, fmt.Errorf("%s.endDate is required for ranges", prefix))
			} else if it.EndDate.Before(it.Date) {
				errs = append(errs, fmt.Errorf("%s.endDate %s is before date %s", prefix,
					it.EndDate.Format(DateLayout), it.Date.Format(DateLayout)))
			}
		}
	}

	return errs
}
