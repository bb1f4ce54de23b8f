package analytics

import "time"

// WeekStart returns the Monday on or before d, at midnight in d's location.
// Weeks run Monday through Sunday; the roll-back crosses month and year
// boundaries as needed.
func WeekStart(d time.Time) time.Time {
	offset := int(d.Weekday()) - 1
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		AddDate(0, 0, -offset)
}

// WeekNumber numbers a week-start date relative to the first Monday of its
// anchor year. The anchor is the week-start's own calendar year whenever it
// differs from baseYear, so numbering always follows the year the week
// actually falls in.
//
// Quirks carried over from the legacy numbering, kept for compatibility with
// historical charts:
//   - when January 1 is itself a Monday, the "first Monday" lands on
//     January 8, not January 1;
//   - any week-start before the anchor year's first Monday collapses into
//     week 1 instead of belonging to the previous year's final week.
//
// Both deviate from ISO 8601 on purpose.
func WeekNumber(weekStart time.Time, baseYear int) int {
	anchor := baseYear
	if weekStart.Year() != baseYear {
		anchor = weekStart.Year()
	}

	firstMonday := firstMondayOf(anchor, weekStart.Location())

	if weekStart.Before(firstMonday) {
		return 1
	}

	days := int(weekStart.Sub(firstMonday).Hours() / 24)
	return days/7 + 1
}

// firstMondayOf finds the anchor year's first Monday per the legacy rule:
// Sunday January 1 maps to January 2; any other weekday maps to
// (8 - weekday) mod 7 days later, substituting 7 when the result is zero.
func firstMondayOf(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)

	var daysToMonday int
	if jan1.Weekday() == time.Sunday {
		daysToMonday = 1
	} else {
		daysToMonday = (8 - int(jan1.Weekday())) % 7
		if daysToMonday == 0 {
			daysToMonday = 7
		}
	}
	return jan1.AddDate(0, 0, daysToMonday)
}
