package domain

import (
	"errors"
	"fmt"
	"strings"
)

// GranularitySet is a small value-type set of visible granularities.
type GranularitySet uint8

const (
	bitYear GranularitySet = 1 << iota
	bitMonth
	bitWeek
	bitDay
)

func granularityBit(g Granularity) GranularitySet {
	switch g {
	case GranularityYear:
		return bitYear
	case GranularityMonth:
		return bitMonth
	case GranularityWeek:
		return bitWeek
	case GranularityDay:
		return bitDay
	}
	return 0
}

// NewGranularitySet builds a set from the given members.
func NewGranularitySet(gs ...Granularity) GranularitySet {
	var s GranularitySet
	for _, g := range gs {
		s |= granularityBit(g)
	}
	return s
}

func (s GranularitySet) Has(g Granularity) bool {
	b := granularityBit(g)
	return b != 0 && s&b != 0
}

func (s GranularitySet) With(g Granularity) GranularitySet    { return s | granularityBit(g) }
func (s GranularitySet) Without(g Granularity) GranularitySet { return s &^ granularityBit(g) }

// Toggle flips membership of g.
func (s GranularitySet) Toggle(g Granularity) GranularitySet {
	return s ^ granularityBit(g)
}

// List returns the members from coarsest to finest.
func (s GranularitySet) List() []Granularity {
	var out []Granularity
	for _, g := range Granularities {
		if s.Has(g) {
			out = append(out, g)
		}
	}
	return out
}

// Finest returns the finest enabled granularity, or "" for an empty set.
func (s GranularitySet) Finest() Granularity {
	list := s.List()
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}

func (s GranularitySet) String() string {
	list := s.List()
	parts := make([]string, len(list))
	for i, g := range list {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}

// ParseGranularitySet parses a comma separated list such as "year,month".
func ParseGranularitySet(s string) (GranularitySet, error) {
	var set GranularitySet
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		g, err := ParseGranularity(part)
		if err != nil {
			return 0, err
		}
		set = set.With(g)
	}
	return set, nil
}

// ErrInvalidZoom is returned for a non-positive pixels-per-day factor.
var ErrInvalidZoom = errors.New("pixels per day must be positive")

// ViewConfig governs geometry derivation only. It is ephemeral and never
// part of TimelineData.
type ViewConfig struct {
	PixelsPerDay  float64
	Granularities GranularitySet
}

// DefaultViewConfig shows year and month bands at
// three pixels per day.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		PixelsPerDay:  3,
		Granularities: NewGranularitySet(GranularityYear, GranularityMonth),
	}
}

// Validate checks the zoom factor.
func (v ViewConfig) Validate() error {
	if !(v.PixelsPerDay > 0) {
		return fmt.Errorf("%w (got %v)", ErrInvalidZoom, v.PixelsPerDay)
	}
	return nil
}

// WithZoom returns a copy with a new pixels-per-day factor clamped to [min, max].
func (v ViewConfig) WithZoom(ppd, min, max float64) ViewConfig {
	if ppd < min {
		ppd = min
	}
	if ppd > max {
		ppd = max
	}
	v.PixelsPerDay = ppd
	return v
}
