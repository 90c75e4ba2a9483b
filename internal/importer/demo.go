package importer

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/gantt/internal/domain"
)

//go:embed demo.json
var demoPlan []byte

// Demo returns the built-in sample plan used when no data file is given.
func Demo() (*domain.TimelineData, error) {
	schema, err := ParseSchema(demoPlan, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("demo plan: %w", err)
	}
	return Build(schema)
}

// LoadOrDemo loads path, or the demo plan when path is empty.
func LoadOrDemo(path string) (*domain.TimelineData, error) {
	if path == "" {
		return Demo()
	}
	return LoadFile(path)
}
