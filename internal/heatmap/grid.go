// Package heatmap lays aggregated daily usage out as a week-major
// contribution grid and classifies each day's intensity.
package heatmap

import (
	"time"

	"github.com/sdpower/ccheatmap/internal/types"
)

// MaxWeeks caps the number of week columns; a calendar year can touch
// parts of at most 53 distinct Sunday-start weeks.
const MaxWeeks = 53

const dateFormat = "2006-01-02"

// BuildYearGrid lays out calendar year `year`: every Sunday-start week
// from the first Sunday on or before Jan 1 through Dec 31.
func BuildYearGrid(year int, days []types.DailyUsage) types.ContributionGrid {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return build(year, 1, start, end, days)
}

// BuildRollingGrid lays out a 12-month window: the 1st of startMonth in
// `year` through the last day of the preceding month one year later.
func BuildRollingGrid(year, startMonth int, days []types.DailyUsage) types.ContributionGrid {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 1
	}
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return build(year, startMonth, start, end, days)
}

func build(year, startMonth int, start, end time.Time, days []types.DailyUsage) types.ContributionGrid {
	usage := make(map[string]int, len(days))
	for _, day := range days {
		usage[day.Date] = day.TotalTokens
	}

	grid := types.ContributionGrid{Year: year, StartMonth: startMonth}

	for anchor := sundayOnOrBefore(start); !anchor.After(end); anchor = anchor.AddDate(0, 0, 7) {
		if len(grid.Weeks) == MaxWeeks {
			break
		}

		var week types.WeekColumn
		for i := 0; i < 7; i++ {
			date := anchor.AddDate(0, 0, i).Format(dateFormat)
			tokens := usage[date] // zero cell when absent
			week.Days[i] = types.DayCell{Date: date, Tokens: tokens}

			grid.TotalTokens += tokens
			if tokens > grid.PeakTokens {
				grid.PeakTokens = tokens
			}
		}
		grid.Weeks = append(grid.Weeks, week)
	}

	for w := range grid.Weeks {
		for d := range grid.Weeks[w].Days {
			cell := &grid.Weeks[w].Days[d]
			cell.Level = Level(cell.Tokens, grid.PeakTokens)
		}
	}

	return grid
}

func sundayOnOrBefore(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// MonthLabels returns one label per week column. Labels are placed every
// four columns using a fixed 4-weeks-per-month spacing, which only
// approximates real month boundaries; it is a display aid, not an exact
// calendar mapping.
func MonthLabels(startMonth, weeks int) []string {
	labels := make([]string, weeks)
	for i := 0; i < weeks; i += 4 {
		month := time.Month((startMonth-1+i/4)%12 + 1)
		labels[i] = month.String()[:3]
	}
	return labels
}
