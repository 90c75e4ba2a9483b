package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/config"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/importer"
	"github.com/alexanderramin/gantt/internal/store"
	"github.com/alexanderramin/gantt/internal/timegrid"
)

// workspace is the loaded plan plus the view settings a command runs with.
type workspace struct {
	Data  domain.TimelineData
	View  config.View
	Today time.Time
}

// loadWorkspace applies config file, environment and flags, in that order,
// and loads the plan (or the demo plan).
func loadWorkspace(app *App, opts *rootOptions) (*workspace, error) {
	v, err := config.LoadView(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.pixelsPerDay != 0 {
		v.PixelsPerDay = opts.pixelsPerDay
	}
	if opts.granularity.changed {
		v.Granularities = nil
		for _, g := range opts.granularity.value.List() {
			v.Granularities = append(v.Granularities, string(g))
		}
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	data, err := importer.LoadOrDemo(opts.dataPath)
	if err != nil {
		return nil, err
	}
	return &workspace{Data: *data, View: v, Today: v.TodayDate(app.now())}, nil
}

func (w *workspace) viewConfig() domain.ViewConfig {
	return w.View.ViewConfig()
}

func (w *workspace) grid() timegrid.Grid {
	return timegrid.BuildWith(w.Data.StartDate, w.Data.EndDate, w.viewConfig(), w.Today, w.View.LabelWidths())
}

// newStore wraps the plan in a store whose changes are logged.
func (w *workspace) newStore(app *App) *store.Store {
	st := store.New(w.Data)
	st.OnChange(store.NewLogObserver(app.logger()))
	return st
}

// findRow resolves a row by id or, failing that, by label.
func findRow(data domain.TimelineData, ref string) (domain.TimelineRow, error) {
	if r, _, ok := data.RowByID(ref); ok {
		return r, nil
	}
	for _, r := range data.Rows {
		if strings.EqualFold(r.Label, ref) {
			return r, nil
		}
	}
	return domain.TimelineRow{}, fmt.Errorf("row %q: %w", ref, store.ErrUnknownRow)
}

// findItem resolves an item by id or, failing that, by label.
func findItem(data domain.TimelineData, ref string) (domain.TimelineItem, error) {
	if it, _, ok := data.ItemByID(ref); ok {
		return it, nil
	}
	for _, it := range data.Items {
		if strings.EqualFold(it.Label, ref) {
			return it, nil
		}
	}
	return domain.TimelineItem{}, fmt.Errorf("item %q: %w", ref, store.ErrUnknownItem)
}
