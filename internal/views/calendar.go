package views

import "time"

// MonthMatrix builds the calendar grid for a month: a sequence of 7-entry
// weeks, Sunday first, with nil padding for leading and trailing
// out-of-month cells.
func MonthMatrix(year int, month time.Month) [][]*time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var matrix [][]*time.Time
	week := make([]*time.Time, 0, 7)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, nil)
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		week = append(week, &day)
		if len(week) == 7 {
			matrix = append(matrix, week)
			week = make([]*time.Time, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		matrix = append(matrix, week)
	}
	return matrix
}

// WeekDates returns the 7 dates of the Sunday-to-Saturday week containing
// anchor.
func WeekDates(anchor time.Time) [7]time.Time {
	sunday := startOfDay(anchor).AddDate(0, 0, -int(anchor.Weekday()))
	var week [7]time.Time
	for i := 0; i < 7; i++ {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}
