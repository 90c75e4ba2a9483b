package domain

import (
	"fmt"
	"strings"
)

type ItemKind string

const (
	ItemMilestone ItemKind = "milestone"
	ItemTask      ItemKind = "task"
	ItemRange     ItemKind = "range"
)

// ValidItemKinds is the canonical set of accepted item kind strings.
var ValidItemKinds = map[string]bool{
	"milestone": true, "task": true, "range": true,
}

// ParseItemKind converts a wire value into an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	if !ValidItemKinds[k] {
		return "", fmt.Errorf("unknown item kind %q (expected milestone|task|range)", s)
	}
	return ItemKind(k), nil
}

type WBSStatus string

const (
	WBSPending    WBSStatus = "Pending"
	WBSInProgress WBSStatus = "In Progress"
	WBSDone       WBSStatus = "Done"
)

// ParseWBSStatus accepts the display form ("In Progress") as well as the
// compact spellings models tend to emit ("InProgress", "in_progress").
func ParseWBSStatus(s string) (WBSStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "", "pending", "todo":
		return WBSPending, nil
	case "inprogress", "active":
		return WBSInProgress, nil
	case "done", "complete", "completed":
		return WBSDone, nil
	default:
		return "", fmt.Errorf("unknown WBS status %q (expected Pending|In Progress|Done)", s)
	}
}

type Granularity string

const (
	GranularityYear  Granularity = "year"
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)

// Granularities lists every granularity from coarsest to finest.
var Granularities = []Granularity{GranularityYear, GranularityMonth, GranularityWeek, GranularityDay}

// ParseGranularity converts a flag or config value into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year", "years", "y":
		return GranularityYear, nil
	case "month", "months", "m":
		return GranularityMonth, nil
	case "week", "weeks", "w":
		return GranularityWeek, nil
	case "day", "days", "d":
		return GranularityDay, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (expected year|month|week|day)", s)
	}
}
