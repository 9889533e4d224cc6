package relative_date

import "github.com/klokku/occasions/pkg/date"

// Period is a calendar-accurate distance between two dates.
type Period struct {
	Years  int
	Months int
	Days   int
}

// PeriodBetween returns the calendar period between two dates regardless of their order.
// Whole months are counted first and the remaining days are measured from the
// month-shifted earlier date, so January 31 to March 1 is 1 month 1 day.
func PeriodBetween(a, b date.Date) Period {
	earlier, later := a, b
	if later.Before(earlier) {
		earlier, later = later, earlier
	}

	totalMonths := (later.Year*12 + int(later.Month)) - (earlier.Year*12 + int(earlier.Month))
	days := later.Day - earlier.Day
	if totalMonths > 0 && days < 0 {
		totalMonths--
		days = date.DaysBetween(earlier.AddMonths(totalMonths), later)
	}

	return Period{Years: totalMonths / 12, Months: totalMonths % 12, Days: days}
}

// PeriodLabel describes the distance from today to target in years, months and days,
// e.g. "in 1 year 2 months" or "3 days ago".
func PeriodLabel(target, today date.Date) string {
	if target == today {
		return Today
	}
	period := PeriodBetween(today, target)

	var parts []string
	if period.Years > 0 {
		parts = append(parts, countOf(period.Years, "year"))
	}
	if period.Months > 0 {
		parts = append(parts, countOf(period.Months, "month"))
	}
	if period.Days > 0 {
		parts = append(parts, countOf(period.Days, "day"))
	}
	return withDirection(joinParts(parts), target.After(today))
}
