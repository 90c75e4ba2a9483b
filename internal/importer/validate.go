package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ValidateSchema checks the wire plan before conversion and returns every
// problem found.
func ValidateSchema(schema *TimelineSchema) []error {
	var errs []error

	start, startErrs := requiredDate("startDate", schema.StartDate)
	errs = append(errs, startErrs...)
	end, endErrs := requiredDate("endDate", schema.EndDate)
	errs = append(errs, endErrs...)
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, fmt.Errorf("endDate %q must not be before startDate %q", schema.EndDate, schema.StartDate))
	}

	rowIDs := make(map[string]bool)
	errs = append(errs, validateRows(schema.Rows, rowIDs)...)
	errs = append(errs, validateItems(schema.Items, rowIDs)...)

	return errs
}

func validateRows(rows []RowImport, rowIDs map[string]bool) []error {
	var errs []error
	if len(rows) == 0 {
		errs = append(errs, fmt.Errorf("rows: at least one row is required"))
	}

	wbsIDs := make(map[string]bool)
	for i, r := range rows {
		prefix := fmt.Sprintf("rows[%d]", i)

		if r.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if rowIDs[r.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
		} else {
			rowIDs[r.ID] = true
		}
		if r.Label == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", prefix))
		}
		if r.Height != nil && *r.Height < 0 {
			errs = append(errs, fmt.Errorf("%s.height must not be negative", prefix))
		}

		clear(wbsIDs)
		errs = append(errs, validateWBS(prefix+".wbs", r.WBS, wbsIDs)...)
	}
	return errs
}

func validateWBS(path string, nodes []WBSImport, ids map[string]bool) []error {
	var errs []error
	for i, n := range nodes {
		prefix := fmt.Sprintf("%s[%d]", path, i)

		if n.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[n.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, n.ID))
		} else {
			ids[n.ID] = true
		}
		if n.TaskName == "" {
			errs = append(errs, fmt.Errorf("%s.taskName is required", prefix))
		}

		start, startErrs := requiredDate(prefix+".startDate", n.StartDate)
		errs = append(errs, startErrs...)
		end, endErrs := requiredDate(prefix+".endDate", n.EndDate)
		errs = append(errs, endErrs...)
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s.endDate %q must not be before startDate %q", prefix, n.EndDate, n.StartDate))
		}

		if _, err := domain.ParseWBSStatus(n.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}

		errs = append(errs, validateWBS(prefix+".subTasks", n.SubTasks, ids)...)
	}
	return errs
}

func validateItems(items []ItemImport, rowIDs map[string]bool) []error {
	var errs []error
	itemIDs := make(map[string]bool)

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if itemIDs[it.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, it.ID))
		} else {
			itemIDs[it.ID] = true
		}

		if it.RowID == "" {
			errs = append(errs, fmt.Errorf("%s.rowId is required", prefix))
		} else if !rowIDs[it.RowID] {
			errs = append(errs, fmt.Errorf("%s.rowId: row %q not found in rows", prefix, it.RowID))
		}

		kind, err := domain.ParseItemKind(domain.CoalesceStr(it.Type, it.Kind, string(domain.ItemMilestone)))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
		}

		date, dateErrs := requiredDate(prefix+".date", it.Date)
		errs = append(errs, dateErrs...)
		end, endErrs := optionalDate(prefix+".endDate", it.EndDate)
		errs = append(errs, endErrs...)

		if kind == domain.ItemRange {
			if it.EndDate == nil || *it.EndDate == "" {
				errs = append(errs, fmt.Errorf("%s.endDate is required for ranges", prefix))
			} else if date != nil && end != nil && end.Before(*date) {
				errs = append(errs, fmt.Errorf("%s.endDate %q must not be before date %q", prefix, *it.EndDate, it.Date))
			}
		}
	}
	return errs
}

func requiredDate(field, value string) (*time.Time, []error) {
	if value == "" {
		return nil, []error{fmt.Errorf("%s is required", field)}
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return &t, nil
}

func optionalDate(field string, value *string) (*time.Time, []error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	return requiredDate(field, *value)
}

// ValidateWBS checks a standalone forest, such as a generated breakdown.
func ValidateWBS(nodes []WBSImport) []error {
	return validateWBS("tasks", nodes, make(map[string]bool))
}
