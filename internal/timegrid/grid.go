// Package timegrid derives header bands and vertical gridlines for a
// timeline range at a given zoom and granularity set.
package timegrid

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/gantt/internal/dategrid"
	"github.com/alexanderramin/gantt/internal/domain"
)

// LineToday marks the current-time reference line.
const LineToday domain.Granularity = "today"

// LabelWidths holds, per granularity, the minimum segment width at which
// an in-band label is drawn.
type LabelWidths map[domain.Granularity]float64

// DefaultLabelWidths are sized for terminal cells, the unit the chart
// renders in.
func DefaultLabelWidths() LabelWidths {
	return LabelWidths{
		domain.GranularityYear:  5,
		domain.GranularityMonth: 4,
		domain.GranularityWeek:  4,
		domain.GranularityDay:   2,
	}
}

// Segment is one labeled cell of a header band.
type Segment struct {
	Start     time.Time // first covered day, clipped to the grid start
	Days      int
	X         float64
	Width     float64
	Label     string
	ShowLabel bool
}

// End returns the day after the last covered day.
func (s Segment) End() time.Time {
	return dategrid.AddDays(s.Start, s.Days)
}

// Band is one header row.
type Band struct {
	Granularity domain.Granularity
	Segments    []Segment
}

// Gridline is a vertical line across the chart body.
type Gridline struct {
	X    float64
	Kind domain.Granularity
	Date time.Time
}

// Grid is the derived time scaffolding for one render.
type Grid struct {
	Start        time.Time
	End          time.Time
	PixelsPerDay float64
	Width        float64
	Bands        []Band
	Lines        []Gridline
	Today        Gridline
}

// Build derives bands and gridlines for [start, end) using the default label widths.
func Build(start, end time.Time, view domain.ViewConfig, today time.Time) Grid {
	return BuildWith(start, end, view, today, DefaultLabelWidths())
}

// BuildWith is Build with explicit label thresholds.
func BuildWith(start, end time.Time, view domain.ViewConfig, today time.Time, labels LabelWidths) Grid {
	start, end = domain.Day(start), domain.Day(end)
	ppd := view.PixelsPerDay

	g := Grid{
		Start:        start,
		End:          end,
		PixelsPerDay: ppd,
		Today: Gridline{
			X:    dategrid.DateToX(today, start, ppd),
			Kind: LineToday,
			Date: domain.Day(today),
		},
	}
	days := dategrid.DaysBetween(start, end)
	if days <= 0 || ppd <= 0 {
		return g
	}
	g.Width = float64(days) * ppd

	months := unitSegments(start, end, ppd, monthUnits(start, end))
	for i := range months {
		months[i].Label = dategrid.MonthLabel(months[i].Start)
	}

	for _, gran := range view.Granularities.List() {
		var segs []Segment
		switch gran {
		case domain.GranularityYear:
			segs = groupYears(months)
		case domain.GranularityMonth:
			segs = append([]Segment(nil), months...)
		case domain.GranularityWeek:
			segs = unitSegments(start, end, ppd, weekUnits(start, end))
			for i := range segs {
				_, wk := segs[i].Start.ISOWeek()
				segs[i].Label = fmt.Sprintf("W%02d", wk)
			}
		case domain.GranularityDay:
			segs = unitSegments(start, end, ppd, dayUnits(start, end))
			for i := range segs {
				segs[i].Label = strconv.Itoa(segs[i].Start.Day())
			}
		}
		minWidth := labels[gran]
		for i := range segs {
			segs[i].ShowLabel = segs[i].Width >= minWidth
		}
		g.Bands = append(g.Bands, Band{Granularity: gran, Segments: segs})
	}

	g.Lines = gridlines(start, end, ppd, view.Granularities)
	return g
}

// Band returns the band for a granularity, if enabled.
func (g Grid) Band(gran domain.Granularity) (Band, bool) {
	for _, b := range g.Bands {
		if b.Granularity == gran {
			return b, true
		}
	}
	return Band{}, false
}

// SegmentAt returns the segment of the given band under x.
func (g Grid) SegmentAt(gran domain.Granularity, x float64) (Segment, bool) {
	b, ok := g.Band(gran)
	if !ok {
		return Segment{}, false
	}
	i := sort.Search(len(b.Segments), func(i int) bool {
		s := b.Segments[i]
		return s.X+s.Width > x
	})
	if i == len(b.Segments) || b.Segments[i].X > x {
		return Segment{}, false
	}
	return b.Segments[i], true
}

// TodayVisible reports whether the current-time line falls inside the grid.
func (g Grid) TodayVisible() bool {
	return g.Today.X >= 0 && g.Today.X <= g.Width
}

func monthUnits(start, end time.Time) []time.Time {
	return dategrid.EnumerateMonths(start, dategrid.AddDays(end, -1))
}

func weekUnits(start, end time.Time) []time.Time {
	return dategrid.EnumerateWeeks(start, dategrid.AddDays(end, -1))
}

func dayUnits(start, end time.Time) []time.Time {
	return dategrid.EnumerateDays(start, dategrid.AddDays(end, -1))
}

// unitSegments clips consecutive unit starts to [start, end) and converts
// them to segments. Consecutive segments share their boundary exactly.
func unitSegments(start, end time.Time, ppd float64, units []time.Time) []Segment {
	segs := make([]Segment, 0, len(units))
	for i, u := range units {
		var next time.Time
		if i+1 < len(units) {
			next = units[i+1]
		} else {
			next = end
		}
		from := u
		if from.Before(start) {
			from = start
		}
		to := next
		if to.After(end) {
			to = end
		}
		n := dategrid.DaysBetween(from, to)
		if n <= 0 {
			continue
		}
		segs = append(segs, Segment{
			Start: from,
			Days:  n,
			X:     dategrid.DateToX(from, start, ppd),
			Width: float64(n) * ppd,
		})
	}
	return segs
}

// groupYears merges contiguous month segments of the same calendar year.
func groupYears(months []Segment) []Segment {
	var out []Segment
	for _, m := range months {
		if n := len(out); n > 0 && out[n-1].Start.Year() == m.Start.Year() {
			out[n-1].Days += m.Days
			out[n-1].Width += m.Width
			continue
		}
		out = append(out, Segment{
			Start: m.Start,
			Days:  m.Days,
			X:     m.X,
			Width: m.Width,
			Label: strconv.Itoa(m.Start.Year()),
		})
	}
	return out
}

// gridlines emits month boundaries always, plus week lines when week or day
// is visible and day lines when day is visible. Boundaries lie in
// (start, end]; when two lines share an X the coarser kind is kept.
func gridlines(start, end time.Time, ppd float64, set domain.GranularitySet) []Gridline {
	byX := make(map[float64]Gridline)
	put := func(l Gridline) {
		if _, taken := byX[l.X]; !taken {
			byX[l.X] = l
		}
	}
	inside := func(t time.Time) bool {
		return t.After(start) && !t.After(end)
	}

	// Coarse first so they win ties.
	for _, m := range dategrid.EnumerateMonths(start, end) {
		if !inside(m) {
			continue
		}
		kind := domain.GranularityMonth
		if set.Has(domain.GranularityYear) && m.Month() == time.January {
			kind = domain.GranularityYear
		}
		put(Gridline{X: dategrid.DateToX(m, start, ppd), Kind: kind, Date: m})
	}

	if set.Has(domain.GranularityWeek) || set.Has(domain.GranularityDay) {
		for _, w := range dategrid.EnumerateWeeks(start, end) {
			if inside(w) {
				put(Gridline{X: dategrid.DateToX(w, start, ppd), Kind: domain.GranularityWeek, Date: w})
			}
		}
	}
	if set.Has(domain.GranularityDay) {
		for _, d := range dategrid.EnumerateDays(start, end) {
			if inside(d) {
				put(Gridline{X: dategrid.DateToX(d, start, ppd), Kind: domain.GranularityDay, Date: d})
			}
		}
	}

	lines := make([]Gridline, 0, len(byX))
	for _, l := range byX {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].X < lines[j].X })
	return lines
}
