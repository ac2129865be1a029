package takt

import "time"

func isWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextWorkingDay advances t to the next working day if it falls on a weekend.
func NextWorkingDay(t time.Time) time.Time {
	for !isWorkingDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddWorkingDays adds n working days to start, skipping weekends. A start on
// a weekend is first moved to the following Monday.
func AddWorkingDays(start time.Time, n int) time.Time {
	current := NextWorkingDay(start)
	for added := 0; added < n; {
		current = current.AddDate(0, 0, 1)
		if isWorkingDay(current) {
			added++
		}
	}
	return current
}
