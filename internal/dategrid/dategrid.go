// Package dategrid converts between calendar dates and horizontal pixel
// offsets and enumerates the calendar units covering a date range.
//
// Every function is pure. Day counts are derived from the calendar
// components of each date (via domain.Day), so a daylight-saving
// transition between two local dates never produces a fractional day.
package dategrid

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// dayNumber returns the count of days since 1970-01-01 for the calendar
// date of t. UTC midnight values divide exactly.
func dayNumber(t time.Time) int64 {
	return floorDiv(domain.Day(t).Unix(), secondsPerDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DaysBetween returns the signed number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

// AddDays shifts the calendar date of t by n days.
func AddDays(t time.Time, n int) time.Time {
	return domain.Day(t).AddDate(0, 0, n)
}

// AddFractionalDays shifts t by a fractional day delta, rounded to the
// nearest whole day.
func AddFractionalDays(t time.Time, delta float64) time.Time {
	return AddDays(t, roundDays(delta))
}

func roundDays(f float64) int {
	return int(math.Round(f))
}

// DateToX maps a calendar date to its horizontal offset from timelineStart.
func DateToX(date, timelineStart time.Time, pixelsPerDay float64) float64 {
	return float64(DaysBetween(timelineStart, date)) * pixelsPerDay
}

// XToDate is the inverse of DateToX, rounded to the nearest whole day.
func XToDate(x float64, timelineStart time.Time, pixelsPerDay float64) time.Time {
	if pixelsPerDay <= 0 {
		return domain.Day(timelineStart)
	}
	return AddFractionalDays(timelineStart, x/pixelsPerDay)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	d := domain.Day(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	return d.AddDate(0, 0, -offset)
}

// EnumerateYears returns January 1st of every year touched by [start, end].
func EnumerateYears(start, end time.Time) []time.Time {
	if domain.Day(end).Before(domain.Day(start)) {
		return nil
	}
	var out []time.Time
	for y := start.Year(); y <= end.Year(); y++ {
		out = append(out, time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
	}
	return out
}

// EnumerateMonths returns the first day of every month touched by
// [start, end], including partial boundary months.
func EnumerateMonths(start, end time.Time) []time.Time {
	if domain.Day(end).Before(domain.Day(start)) {
		return nil
	}
	last := MonthStart(end)
	var out []time.Time
	for cur := MonthStart(start); !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		out = append(out, cur)
	}
	return out
}

// EnumerateWeeks returns Monday-aligned week starts. The first entry is on
// or before start; the last is on or before end.
func EnumerateWeeks(start, end time.Time) []time.Time {
	last := domain.Day(end)
	if last.Before(domain.Day(start)) {
		return nil
	}
	var out []time.Time
	for cur := WeekStart(start); !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		out = append(out, cur)
	}
	return out
}

// EnumerateDays returns every calendar day in [start, end].
func EnumerateDays(start, end time.Time) []time.Time {
	last := domain.Day(end)
	var out []time.Time
	for cur := domain.Day(start); !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		out = append(out, cur)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// FormatShort renders the compact yy/m/d label used next to chart items.
func FormatShort(t time.Time) string {
	return fmt.Sprintf("%02d/%d/%d", t.Year()%100, int(t.Month()), t.Day())
}

// MonthLabel returns the three-letter month name.
func MonthLabel(t time.Time) string {
	return monthLabels[t.Month()-1]
}

// MonthYearLabel renders e.g. "2024 Jul".
func MonthYearLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Year(), MonthLabel(t))
}
