package relative_date

import (
	"fmt"
	"slices"
	"strings"

	"github.com/klokku/occasions/pkg/date"
)

// Today is returned instead of a phrase when the target date is today.
const Today = "today"

// daysInMonth is the fixed month length used by RelativeLabel. It is not calendar accurate,
// PeriodLabel is the calendar-accurate counterpart.
const daysInMonth = 30

type Variant int

const (
	// Standard produces "in 1 month 15 days" / "1 month 15 days ago".
	Standard Variant = iota
	// WithDayCount appends the raw number of days, e.g. "in 1 month 15 days (45 days)".
	WithDayCount
)

// RelativeLabel describes how far target is from today using 30-day months.
func RelativeLabel(target, today date.Date, variant Variant) string {
	deltaDays := date.DaysBetween(today, target)
	if deltaDays == 0 {
		return Today
	}
	n := abs(deltaDays)

	var phrase string
	if n < daysInMonth {
		phrase = countOf(n, "day")
	} else {
		months := n / daysInMonth
		remainder := n % daysInMonth
		phrase = countOf(months, "month")
		if remainder > 0 {
			phrase += " " + countOf(remainder, "day")
		}
	}

	label := withDirection(phrase, deltaDays > 0)
	if variant == WithDayCount {
		label += " (" + countOf(n, "day") + ")"
	}
	return label
}

// DaysCount returns the absolute number of days between target and today, and whether target is today.
func DaysCount(target, today date.Date) (int, bool) {
	n := abs(date.DaysBetween(today, target))
	return n, n == 0
}

// AverageFrequency returns the mean number of days between consecutive dates.
// The second return value is false when fewer than two dates are given.
func AverageFrequency(dates []date.Date) (float64, bool) {
	if len(dates) < 2 {
		return 0, false
	}
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, date.Date.Compare)

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += date.DaysBetween(sorted[i-1], sorted[i])
	}
	return float64(total) / float64(len(sorted)-1), true
}

func IsAtLeastOneMonth(target, today date.Date) bool {
	return abs(date.DaysBetween(today, target)) >= daysInMonth
}

func withDirection(phrase string, future bool) string {
	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}

func countOf(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func joinParts(parts []string) string {
	return strings.Join(parts, " ")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
