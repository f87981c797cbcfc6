package services

import "time"

// DaysInMonth returns the number of days in month (1..12) of year,
// accounting for leap years. It returns 0 for an out-of-range month.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayOptions lists 1..N for the selected year and month, or nothing when
// either is unset.
func DayOptions(year, month *int) []int {
	if year == nil || month == nil {
		return []int{}
	}
	n := DaysInMonth(*year, *month)
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// YearOptions lists the selectable birth years, from minYear up to the year of now.
func YearOptions(minYear int, now time.Time) []int {
	var out []int
	for y := minYear; y <= now.Year(); y++ {
		out = append(out, y)
	}
	return out
}
