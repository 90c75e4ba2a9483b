package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }
func ptrBool(b bool) *bool    { return &b }

func validMinimalSchema() *TimelineSchema {
	return &TimelineSchema{
		Title:     "Plan",
		StartDate: "2024-07-01",
		EndDate:   "2025-12-31",
		Rows: []RowImport{
			{ID: "r1", Label: "Milestones"},
		},
		Items: []ItemImport{
			{ID: "m1", RowID: "r1", Label: "Kickoff", Date: "2024-07-22", Type: "milestone"},
		},
	}
}

func TestValidateSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSchema(validMinimalSchema()))
}

func TestValidateSchema_ValidFull(t *testing.T) {
	schema := validMinimalSchema()
	schema.Rows = append(schema.Rows, RowImport{
		ID: "r2", Label: "Samples", Height: ptrInt(80),
		WBS: []WBSImport{
			{ID: "w1", TaskName: "Tooling", StartDate: "2024-08-01", EndDate: "2024-08-20", Status: "In Progress",
				SubTasks: []WBSImport{{ID: "w1a", TaskName: "Mould", StartDate: "2024-08-01", EndDate: "2024-08-05"}}},
		},
	})
	schema.Items = append(schema.Items,
		ItemImport{ID: "s1", RowID: "r2", Label: "Build", Date: "2024-09-09", EndDate: ptrStr("2024-10-23"), Type: "range", Color: "#84cc16"},
		ItemImport{ID: "t1", RowID: "r2", Label: "Review", Date: "2024-11-01", Kind: "task", IsCritical: ptrBool(true)},
	)

	assert.Empty(t, ValidateSchema(schema))
}

func TestValidateSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TimelineSchema)
		wantErr string
	}{
		{"missing start", func(s *TimelineSchema) { s.StartDate = "" }, "startDate is required"},
		{"bad end format", func(s *TimelineSchema) { s.EndDate = "31/12/2025" }, `endDate: invalid date format "31/12/2025"`},
		{"inverted chart", func(s *TimelineSchema) { s.EndDate = "2024-01-01" }, "must not be before startDate"},
		{"no rows", func(s *TimelineSchema) { s.Rows = nil; s.Items = nil }, "at least one row is required"},
		{"row id", func(s *TimelineSchema) { s.Rows[0].ID = "" }, "rows[0].id is required"},
		{"row label", func(s *TimelineSchema) { s.Rows[0].Label = "" }, "rows[0].label is required"},
		{"negative height", func(s *TimelineSchema) { s.Rows[0].Height = ptrInt(-1) }, "rows[0].height must not be negative"},
		{"duplicate row", func(s *TimelineSchema) { s.Rows = append(s.Rows, RowImport{ID: "r1", Label: "x"}) }, `rows[1].id: duplicate id "r1"`},
		{"unknown row", func(s *TimelineSchema) { s.Items[0].RowID = "r9" }, `items[0].rowId: row "r9" not found in rows`},
		{"item id", func(s *TimelineSchema) { s.Items[0].ID = "" }, "items[0].id is required"},
		{"bad kind", func(s *TimelineSchema) { s.Items[0].Type = "phase" }, "items[0].type: unknown item kind"},
		{"range without end", func(s *TimelineSchema) { s.Items[0].Type = "range" }, "items[0].endDate is required for ranges"},
		{"inverted range", func(s *TimelineSchema) {
			s.Items[0].Type = "range"
			s.Items[0].EndDate = ptrStr("2024-07-01")
		}, `items[0].endDate "2024-07-01" must not be before date "2024-07-22"`},
		{"wbs dates", func(s *TimelineSchema) {
			s.Rows[0].WBS = []WBSImport{{ID: "w", TaskName: "x", StartDate: "2024-08-02", EndDate: "2024-08-01"}}
		}, "rows[0].wbs[0].endDate"},
		{"wbs nested duplicate", func(s *TimelineSchema) {
			s.Rows[0].WBS = []WBSImport{{ID: "w", TaskName: "x", StartDate: "2024-08-01", EndDate: "2024-08-02",
				SubTasks: []WBSImport{{ID: "w", TaskName: "y", StartDate: "2024-08-01", EndDate: "2024-08-02"}}}}
		}, `rows[0].wbs[0].subTasks[0].id: duplicate id "w"`},
		{"wbs status", func(s *TimelineSchema) {
			s.Rows[0].WBS = []WBSImport{{ID: "w", TaskName: "x", StartDate: "2024-08-01", EndDate: "2024-08-02", Status: "Blocked"}}
		}, "rows[0].wbs[0].status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validMinimalSchema()
			tt.mutate(schema)
			errs := ValidateSchema(schema)
			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			assert.Contains(t, strings.Join(msgs, "\n"), tt.wantErr)
		})
	}
}

func TestValidateSchema_SameWBSIDInDifferentRows(t *testing.T) {
	schema := validMinimalSchema()
	node := WBSImport{ID: "w", TaskName: "x", StartDate: "2024-08-01", EndDate: "2024-08-02"}
	schema.Rows[0].WBS = []WBSImport{node}
	schema.Rows = append(schema.Rows, RowImport{ID: "r2", Label: "Other", WBS: []WBSImport{node}})

	assert.Empty(t, ValidateSchema(schema))
}
