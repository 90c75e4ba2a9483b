package wbs

import "github.com/alexanderramin/gantt/internal/domain"

// ExpandedSet holds the ids of expanded nodes. It is a value: every method
// that changes membership returns a new set.
type ExpandedSet struct {
	ids map[string]struct{}
}

func NewExpandedSet(ids ...string) ExpandedSet {
	return ExpandedSet{}.With(ids...)
}

func (s ExpandedSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s ExpandedSet) Len() int { return len(s.ids) }

func (s ExpandedSet) copy(extra int) map[string]struct{} {
	m := make(map[string]struct{}, len(s.ids)+extra)
	for id := range s.ids {
		m[id] = struct{}{}
	}
	return m
}

// With returns a set that also contains ids.
func (s ExpandedSet) With(ids ...string) ExpandedSet {
	m := s.copy(len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return ExpandedSet{ids: m}
}

// Toggle flips membership of id.
func (s ExpandedSet) Toggle(id string) ExpandedSet {
	m := s.copy(1)
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	return ExpandedSet{ids: m}
}

// AutoExpand adds every generated node that has children, at any depth, so
// a fresh breakdown opens fully.
func AutoExpand(s ExpandedSet, generated []domain.WBSItem) ExpandedSet {
	var ids []string
	var walk func([]domain.WBSItem)
	walk = func(nodes []domain.WBSItem) {
		for _, n := range nodes {
			if n.HasSubTasks() {
				ids = append(ids, n.ID)
				walk(n.SubTasks)
			}
		}
	}
	walk(generated)
	return s.With(ids...)
}

// VisibleRow is one line of the flattened tree.
type VisibleRow struct {
	Item        domain.WBSItem
	Level       int
	HasChildren bool
	Expanded    bool
	IsLast      bool
}

// Visible flattens the forest in pre-order, descending only into expanded nodes.
func Visible(forest []domain.WBSItem, expanded ExpandedSet) []VisibleRow {
	var out []VisibleRow
	var walk func([]domain.WBSItem, int)
	walk = func(nodes []domain.WBSItem, level int) {
		for i, n := range nodes {
			open := n.HasSubTasks() && expanded.Has(n.ID)
			out = append(out, VisibleRow{
				Item:        n,
				Level:       level,
				HasChildren: n.HasSubTasks(),
				Expanded:    open,
				IsLast:      i == len(nodes)-1,
			})
			if open {
				walk(n.SubTasks, level+1)
			}
		}
	}
	walk(forest, 0)
	return out
}
