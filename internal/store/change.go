package store

import (
	"context"
	"log/slog"
)

type ChangeKind string

const (
	ChangeItemDates    ChangeKind = "item_dates"
	ChangeItemEdit     ChangeKind = "item_edit"
	ChangeWBSEdit      ChangeKind = "wbs_edit"
	ChangeWBSDelete    ChangeKind = "wbs_delete"
	ChangeImport       ChangeKind = "import"
	ChangeBreakdown    ChangeKind = "breakdown"
	ChangeError        ChangeKind = "error"
	ChangeErrorCleared ChangeKind = "error_cleared"
)

// Change describes one applied mutation or error signal.
type Change struct {
	Kind    ChangeKind
	Version uint64
	ItemID  string
	RowID   string
	NodeID  string
	Err     error
}

// Listener is called synchronously after every change.
type Listener func(Change)

// OnChange registers a listener.
func (s *Store) OnChange(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Store) emit(c Change) {
	s.version++
	c.Version = s.version
	for _, l := range s.listeners {
		l(c)
	}
}

// NewLogObserver returns a listener that logs every change. A nil logger
// yields a listener that does nothing.
func NewLogObserver(logger *slog.Logger) Listener {
	if logger == nil {
		return func(Change) {}
	}
	return func(c Change) {
		attrs := make([]any, 0, 10)
		attrs = append(attrs, "kind", string(c.Kind), "version", c.Version)
		if c.RowID != "" {
			attrs = append(attrs, "row", c.RowID)
		}
		if c.ItemID != "" {
			attrs = append(attrs, "item", c.ItemID)
		}
		if c.NodeID != "" {
			attrs = append(attrs, "node", c.NodeID)
		}
		if c.Err != nil {
			attrs = append(attrs, "error", c.Err.Error())
			logger.WarnContext(context.Background(), "store_change", attrs...)
			return
		}
		logger.DebugContext(context.Background(), "store_change", attrs...)
	}
}
