// Package wbs edits and lays out per-row work breakdown forests. Forests are
// treated as immutable values: every edit returns a new forest and leaves
// the input valid for callers that still hold it.
package wbs

import (
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Patch is a shallow merge. Nil fields are left untouched and SubTasks are
// always preserved.
type Patch struct {
	TaskName  *string
	StartDate *time.Time
	EndDate   *time.Time
	Duration  *string
	Owner     *string
	Status    *domain.WBSStatus
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.TaskName == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Duration == nil && p.Owner == nil && p.Status == nil
}

// Apply returns n with the patch merged in.
func (p Patch) Apply(n domain.WBSItem) domain.WBSItem {
	if p.TaskName != nil {
		n.TaskName = *p.TaskName
	}
	if p.StartDate != nil {
		n.StartDate = domain.Day(*p.StartDate)
	}
	if p.EndDate != nil {
		n.EndDate = domain.Day(*p.EndDate)
	}
	if p.Duration != nil {
		n.Duration = *p.Duration
	}
	if p.Owner != nil {
		n.Owner = *p.Owner
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	return n
}

// Op is either a Patch or the Delete sentinel.
type Op struct {
	patch  Patch
	delete bool
}

// Delete removes the target node together with its subtree.
var Delete = Op{delete: true}

// Update merges p into the target node.
func Update(p Patch) Op {
	return Op{patch: p}
}

// IsDelete reports whether the op removes its target.
func (o Op) IsDelete() bool { return o.delete }

// FindAndTransform applies op to the first node with targetID in depth-first
// pre-order. Only the slices on the path to the target are copied. If the id
// is not found the input forest is returned as-is with false.
//
// Ids are expected to be unique per forest; with duplicates only the first
// match is affected.
func FindAndTransform(forest []domain.WBSItem, targetID string, op Op) ([]domain.WBSItem, bool) {
	for i, n := range forest {
		if n.ID == targetID {
			if op.delete {
				out := make([]domain.WBSItem, 0, len(forest)-1)
				out = append(out, forest[:i]...)
				return append(out, forest[i+1:]...), true
			}
			out := append([]domain.WBSItem(nil), forest...)
			out[i] = op.patch.Apply(n)
			return out, true
		}

		if sub, ok := FindAndTransform(n.SubTasks, targetID, op); ok {
			out := append([]domain.WBSItem(nil), forest...)
			n.SubTasks = sub
			out[i] = n
			return out, true
		}
	}
	return forest, false
}

// Find returns the node with id and the ids of its ancestors, root first.
func Find(forest []domain.WBSItem, id string) (domain.WBSItem, []string, bool) {
	for _, n := range forest {
		if n.ID == id {
			return n, nil, true
		}
		if found, path, ok := Find(n.SubTasks, id); ok {
			return found, append([]string{n.ID}, path...), true
		}
	}
	return domain.WBSItem{}, nil, false
}

// Count returns the number of nodes in the forest.
func Count(forest []domain.WBSItem) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.SubTasks)
	}
	return total
}

// FillIDs returns a copy of the forest in which empty or repeated ids are
// replaced with values from newID.
func FillIDs(forest []domain.WBSItem, newID func() string) []domain.WBSItem {
	seen := make(map[string]bool)
	var fill func([]domain.WBSItem) []domain.WBSItem
	fill = func(nodes []domain.WBSItem) []domain.WBSItem {
		if nodes == nil {
			return nil
		}
		out := make([]domain.WBSItem, len(nodes))
		for i, n := range nodes {
			if n.ID == "" || seen[n.ID] {
				n.ID = newID()
			}
			seen[n.ID] = true
			n.SubTasks = fill(n.SubTasks)
			out[i] = n
		}
		return out
	}
	return fill(forest)
}

// Validate reports inverted dates and duplicate ids.
func Validate(forest []domain.WBSItem) []error {
	return domain.ValidateWBS(forest)
}
