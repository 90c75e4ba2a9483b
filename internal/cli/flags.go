package cli

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/pflag"
)

// granularityValue is a pflag.Value for a comma-separated granularity set.
type granularityValue struct {
	value   domain.GranularitySet
	changed bool
}

var _ pflag.Value = (*granularityValue)(nil)

func (g *granularityValue) String() string {
	if !g.changed {
		return ""
	}
	return g.value.String()
}

func (g *granularityValue) Set(s string) error {
	set, err := domain.ParseGranularitySet(s)
	if err != nil {
		return err
	}
	g.value = set
	g.changed = true
	return nil
}

func (g *granularityValue) Type() string { return "granularities" }
