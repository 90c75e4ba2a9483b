package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// ErrInvalidPlan wraps the validation errors of a rejected plan.
var ErrInvalidPlan = errors.New("invalid plan")

// Convert transforms a validated schema into the domain model.
// Call ValidateSchema first; Convert assumes the schema is valid.
func Convert(schema *TimelineSchema) (*domain.TimelineData, error) {
	start, err := time.Parse(domain.DateLayout, schema.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing startDate: %w", err)
	}
	end, err := time.Parse(domain.DateLayout, schema.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing endDate: %w", err)
	}

	data := &domain.TimelineData{
		Title:     schema.Title,
		StartDate: start,
		EndDate:   end,
		Rows:      make([]domain.TimelineRow, 0, len(schema.Rows)),
		Items:     make([]domain.TimelineItem, 0, len(schema.Items)),
	}

	for _, r := range schema.Rows {
		forest, err := ConvertWBS(r.WBS)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", r.ID, err)
		}
		data.Rows = append(data.Rows, domain.TimelineRow{
			ID:     r.ID,
			Label:  r.Label,
			Height: domain.IntFromPtrWithDefault(domain.DefaultRowHeight, r.Height),
			WBS:    forest,
		})
	}

	for _, it := range schema.Items {
		kind, err := domain.ParseItemKind(domain.CoalesceStr(it.Type, it.Kind, string(domain.ItemMilestone)))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		date, err := time.Parse(domain.DateLayout, it.Date)
		if err != nil {
			return nil, fmt.Errorf("item %s: parsing date: %w", it.ID, err)
		}
		item := domain.TimelineItem{
			ID:         it.ID,
			RowID:      it.RowID,
			Label:      it.Label,
			Date:       date,
			Kind:       kind,
			IsCritical: domain.BoolFromPtrWithDefault(false, it.IsCritical),
			Color:      it.Color,
		}
		if kind == domain.ItemRange && it.EndDate != nil {
			e, err := time.Parse(domain.DateLayout, *it.EndDate)
			if err != nil {
				return nil, fmt.Errorf("item %s: parsing endDate: %w", it.ID, err)
			}
			item.EndDate = &e
		}
		data.Items = append(data.Items, item)
	}

	return data, nil
}

// ConvertWBS transforms validated wire nodes into a domain forest.
func ConvertWBS(nodes []WBSImport) ([]domain.WBSItem, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]domain.WBSItem, 0, len(nodes))
	for _, n := range nodes {
		start, err := time.Parse(domain.DateLayout, n.StartDate)
		if err != nil {
			return nil, fmt.Errorf("wbs %s: parsing startDate: %w", n.ID, err)
		}
		end, err := time.Parse(domain.DateLayout, n.EndDate)
		if err != nil {
			return nil, fmt.Errorf("wbs %s: parsing endDate: %w", n.ID, err)
		}
		status, err := domain.ParseWBSStatus(n.Status)
		if err != nil {
			return nil, fmt.Errorf("wbs %s: %w", n.ID, err)
		}
		subs, err := ConvertWBS(n.SubTasks)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.WBSItem{
			ID:        n.ID,
			TaskName:  n.TaskName,
			StartDate: start,
			EndDate:   end,
			Duration:  n.Duration,
			Owner:     n.Owner,
			Status:    status,
			SubTasks:  subs,
		})
	}
	return out, nil
}

// AssignIDs fills empty or repeated item and WBS ids with fresh uuids.
// Row ids are left alone because items reference them.
func AssignIDs(schema *TimelineSchema) {
	seen := make(map[string]bool)
	for i := range schema.Items {
		id := schema.Items[i].ID
		if id == "" || seen[id] {
			id = uuid.New().String()
			schema.Items[i].ID = id
		}
		seen[id] = true
	}
	for i := range schema.Rows {
		AssignWBSIDs(schema.Rows[i].WBS)
	}
}

// AssignWBSIDs fills empty or repeated node ids in place.
func AssignWBSIDs(nodes []WBSImport) {
	seen := make(map[string]bool)
	var walk func([]WBSImport)
	walk = func(ns []WBSImport) {
		for i := range ns {
			if ns[i].ID == "" || seen[ns[i].ID] {
				ns[i].ID = uuid.New().String()
			}
			seen[ns[i].ID] = true
			walk(ns[i].SubTasks)
		}
	}
	walk(nodes)
}

// Build validates and converts a schema. Validation failures are joined
// under ErrInvalidPlan.
func Build(schema *TimelineSchema) (*domain.TimelineData, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
	}
	return Convert(schema)
}

// LoadFile reads, validates and converts a JSON or YAML plan file.
func LoadFile(path string) (*domain.TimelineData, error) {
	schema, err := LoadSchema(path)
	if err != nil {
		return nil, err
	}
	return Build(schema)
}
