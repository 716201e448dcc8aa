package service

import "time"

// NextStreak returns the day-streak after a vote at now, given the current
// streak and the previous vote time. Gaps are measured in calendar days,
// not wall-clock hours: voting at 23:59 and again at 00:01 counts as
// consecutive days.
func NextStreak(current int, lastVote, now time.Time) int {
	if lastVote.IsZero() {
		return 1
	}

	switch gap := calendarDayGap(lastVote, now); {
	case gap == 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// calendarDayGap returns the number of calendar days between two times,
// evaluated in UTC.
func calendarDayGap(earlier, later time.Time) int {
	earlierDay := truncateToDay(earlier)
	laterDay := truncateToDay(later)
	return int(laterDay.Sub(earlierDay).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
