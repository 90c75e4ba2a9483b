package domain

import (
	"fmt"
	"time"
)

// WBSItem is one node of a row's work breakdown structure.
type WBSItem struct {
	ID        string
	TaskName  string
	StartDate time.Time
	EndDate   time.Time
	Duration  string // free-form, e.g. "5 days"
	Owner     string
	Status    WBSStatus
	SubTasks  []WBSItem
}

// HasSubTasks reports whether the node has children.
func (w WBSItem) HasSubTasks() bool {
	return len(w.SubTasks) > 0
}

// CloneWBS deep-copies a forest. A nil forest stays nil.
func CloneWBS(forest []WBSItem) []WBSItem {
	if forest == nil {
		return nil
	}
	out := make([]WBSItem, len(forest))
	for i, n := range forest {
		n.SubTasks = CloneWBS(n.SubTasks)
		out[i] = n
	}
	return out
}

// ValidateWBS reports inverted date ranges and duplicate ids anywhere in the forest.
func ValidateWBS(forest []WBSItem) []error {
	seen := make(map[string]bool)
	var errs []error
	var walk func(nodes []WBSItem, path string)
	walk = func(nodes []WBSItem, path string) {
		for i, n := range nodes {
			p := fmt.Sprintf("%s[%d]", path, i)
			if n.ID == "" {
				errs = append(errs, fmt.Errorf("%s.id is required", p))
			} else if seen[n.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", p, n.ID))
			}
			seen[n.ID] = true
			if n.EndDate.Before(n.StartDate) {
				errs = append(errs, fmt.Errorf("%s (%s): endDate %s is before startDate %s", p, n.ID,
					n.EndDate.Format(DateLayout), n.StartDate.Format(DateLayout)))
			}
			walk(n.SubTasks, p+".subTasks")
		}
	}
	walk(forest, "tasks")
	return errs
}
