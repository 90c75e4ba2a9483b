// Package config loads view settings from YAML and the environment and
// builds the process logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/drag"
	"github.com/alexanderramin/gantt/internal/timegrid"
	"github.com/alexanderramin/gantt/internal/wbs"
	"gopkg.in/yaml.v3"
)

// LabelWidths are the minimum segment widths, in cells, that keep a label.
type LabelWidths struct {
	Year  float64 `yaml:"year"`
	Month float64 `yaml:"month"`
	Week  float64 `yaml:"week"`
	Day   float64 `yaml:"day"`
}

type WBSConfig struct {
	MinBarWidth   float64 `yaml:"min_bar_width"`
	LabelMinWidth float64 `yaml:"label_min_width"`
}

type DragConfig struct {
	EdgeTolerance float64 `yaml:"edge_tolerance"`
	CommitMode    string  `yaml:"commit_mode"`
}

type ZoomConfig struct {
	Step float64 `yaml:"step"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// View holds every presentation setting. Nothing here is stored with the
// timeline.
type View struct {
	PixelsPerDay  float64     `yaml:"pixels_per_day"`
	Granularities []string    `yaml:"granularities"`
	LabelMinWidth LabelWidths `yaml:"label_min_width"`
	WBS           WBSConfig   `yaml:"wbs"`
	Drag          DragConfig  `yaml:"drag"`
	Zoom          ZoomConfig  `yaml:"zoom"`
	Today         string      `yaml:"today"` // fixed "today" for demos and tests
}

// DefaultView returns settings sized for a terminal, where one pixel is one
// cell.
func DefaultView() View {
	lw := timegrid.DefaultLabelWidths()
	return View{
		PixelsPerDay:  1,
		Granularities: []string{"year", "month"},
		LabelMinWidth: LabelWidths{
			Year:  lw[domain.GranularityYear],
			Month: lw[domain.GranularityMonth],
			Week:  lw[domain.GranularityWeek],
			Day:   lw[domain.GranularityDay],
		},
		WBS:  WBSConfig{MinBarWidth: 1, LabelMinWidth: 12},
		Drag: DragConfig{EdgeTolerance: 1, CommitMode: string(drag.CommitLive)},
		Zoom: ZoomConfig{Step: 1.25, Min: 0.1, Max: 40},
	}
}

// LoadView reads path over the defaults (an empty path keeps the defaults),
// applies GANTT_PIXELS_PER_DAY and GANTT_GRANULARITIES, and validates.
func LoadView(path string) (View, error) {
	v := DefaultView()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return View{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &v); err != nil {
			return View{}, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if s := os.Getenv("GANTT_PIXELS_PER_DAY"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return View{}, fmt.Errorf("GANTT_PIXELS_PER_DAY: %w", err)
		}
		v.PixelsPerDay = f
	}
	if s := os.Getenv("GANTT_GRANULARITIES"); s != "" {
		set, err := domain.ParseGranularitySet(s)
		if err != nil {
			return View{}, fmt.Errorf("GANTT_GRANULARITIES: %w", err)
		}
		v.Granularities = granularityNames(set)
	}

	if err := v.Validate(); err != nil {
		return View{}, err
	}
	return v, nil
}

// Validate reports every invalid setting.
func (v View) Validate() error {
	var errs []error
	if !(v.PixelsPerDay > 0) {
		errs = append(errs, fmt.Errorf("pixels_per_day: %w (got %v)", domain.ErrInvalidZoom, v.PixelsPerDay))
	}
	for i, g := range v.Granularities {
		if _, err := domain.ParseGranularity(g); err != nil {
			errs = append(errs, fmt.Errorf("granularities[%d]: %w", i, err))
		}
	}
	if v.WBS.MinBarWidth < 0 || v.WBS.LabelMinWidth < 0 {
		errs = append(errs, fmt.Errorf("wbs: widths must not be negative"))
	}
	if v.Drag.EdgeTolerance < 0 {
		errs = append(errs, fmt.Errorf("drag.edge_tolerance must not be negative"))
	}
	switch drag.CommitMode(v.Drag.CommitMode) {
	case drag.CommitLive, drag.CommitRelease:
	default:
		errs = append(errs, fmt.Errorf("drag.commit_mode: invalid value %q (expected live|release)", v.Drag.CommitMode))
	}
	if !(v.Zoom.Min > 0) || v.Zoom.Max < v.Zoom.Min {
		errs = append(errs, fmt.Errorf("zoom: need 0 < min <= max (got min=%v max=%v)", v.Zoom.Min, v.Zoom.Max))
	}
	if v.Zoom.Step <= 1 {
		errs = append(errs, fmt.Errorf("zoom.step must be greater than 1 (got %v)", v.Zoom.Step))
	}
	if v.Today != "" {
		if _, err := dategrid.ParseDate(v.Today); err != nil {
			errs = append(errs, fmt.Errorf("today: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ViewConfig returns the geometry settings.
func (v View) ViewConfig() domain.ViewConfig {
	var set domain.GranularitySet
	for _, g := range v.Granularities {
		if parsed, err := domain.ParseGranularity(g); err == nil {
			set = set.With(parsed)
		}
	}
	return domain.ViewConfig{PixelsPerDay: v.PixelsPerDay, Granularities: set}
}

func (v View) LabelWidths() timegrid.LabelWidths {
	return timegrid.LabelWidths{
		domain.GranularityYear:  v.LabelMinWidth.Year,
		domain.GranularityMonth: v.LabelMinWidth.Month,
		domain.GranularityWeek:  v.LabelMinWidth.Week,
		domain.GranularityDay:   v.LabelMinWidth.Day,
	}
}

func (v View) BarStyle() wbs.BarStyle {
	return wbs.BarStyle{MinWidth: v.WBS.MinBarWidth, LabelMinWidth: v.WBS.LabelMinWidth}
}

func (v View) CommitMode() drag.CommitMode {
	return drag.CommitMode(v.Drag.CommitMode)
}

// TodayDate returns the configured date, or the calendar day of now.
func (v View) TodayDate(now time.Time) time.Time {
	if v.Today != "" {
		if t, err := dategrid.ParseDate(v.Today); err == nil {
			return t
		}
	}
	return domain.Day(now)
}

// Zoomed returns the next zoom level in or out, clamped to the limits.
func (v View) Zoomed(cfg domain.ViewConfig, in bool) domain.ViewConfig {
	ppd := cfg.PixelsPerDay / v.Zoom.Step
	if in {
		ppd = cfg.PixelsPerDay * v.Zoom.Step
	}
	return cfg.WithZoom(ppd, v.Zoom.Min, v.Zoom.Max)
}

func granularityNames(set domain.GranularitySet) []string {
	list := set.List()
	out := make([]string, len(list))
	for i, g := range list {
		out[i] = string(g)
	}
	return out
}
