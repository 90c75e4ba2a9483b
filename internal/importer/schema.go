package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TimelineSchema is the wire form of a timeline, shared by plan files and
// model output.
type TimelineSchema struct {
	Title     string       `json:"title" yaml:"title"`
	StartDate string       `json:"startDate" yaml:"startDate"`
	EndDate   string       `json:"endDate" yaml:"endDate"`
	Rows      []RowImport  `json:"rows" yaml:"rows"`
	Items     []ItemImport `json:"items" yaml:"items"`
}

// RowImport defines a row in the import file.
type RowImport struct {
	ID     string      `json:"id" yaml:"id"`
	Label  string      `json:"label" yaml:"label"`
	Height *int        `json:"height,omitempty" yaml:"height,omitempty"`
	WBS    []WBSImport `json:"wbs,omitempty" yaml:"wbs,omitempty"`
}

// ItemImport defines a schedule item. The kind may be given as "type" or
// "kind".
type ItemImport struct {
	ID         string  `json:"id" yaml:"id"`
	RowID      string  `json:"rowId" yaml:"rowId"`
	Label      string  `json:"label" yaml:"label"`
	Date       string  `json:"date" yaml:"date"`
	EndDate    *string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Type       string  `json:"type,omitempty" yaml:"type,omitempty"`
	Kind       string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	IsCritical *bool   `json:"isCritical,omitempty" yaml:"isCritical,omitempty"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// WBSImport defines one node of a row's work breakdown.
type WBSImport struct {
	ID        string      `json:"id" yaml:"id"`
	TaskName  string      `json:"taskName" yaml:"taskName"`
	StartDate string      `json:"startDate" yaml:"startDate"`
	EndDate   string      `json:"endDate" yaml:"endDate"`
	Duration  string      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Owner     string      `json:"owner,omitempty" yaml:"owner,omitempty"`
	Status    string      `json:"status,omitempty" yaml:"status,omitempty"`
	SubTasks  []WBSImport `json:"subTasks,omitempty" yaml:"subTasks,omitempty"`
}

// Format is the encoding of a plan file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension. Unknown extensions
// are read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseSchema decodes a plan in the given format.
func ParseSchema(data []byte, format Format) (*TimelineSchema, error) {
	var schema TimelineSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing yaml plan: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing json plan: %w", err)
		}
	}
	return &schema, nil
}

// LoadSchema reads and parses a plan file.
func LoadSchema(path string) (*TimelineSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data, FormatForPath(path))
}
