package service

import "time"

// CurrentStreak computes the consecutive-day check-in streak ending today.
// dates must be deduplicated by calendar date and ordered descending; the
// caller guarantees both. now anchors "today" and its time-of-day is
// ignored.
//
// A streak only counts when today itself has a check-in: a run that ended
// yesterday scores zero. Most streak UIs keep a streak alive until a full
// day is missed, so this reads as strict, but it matches the product's
// observed dashboard behavior and is kept deliberately.
func CurrentStreak(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := toDate(now)
	if !toDate(dates[0]).Equal(today) {
		return 0
	}

	streak := 1
	prev := today
	for _, d := range dates[1:] {
		day := toDate(d)
		if !day.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = day
	}

	return streak
}

// toDate strips the time-of-day, keeping the location so day arithmetic
// stays consistent across DST boundaries.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns the whole calendar days from a to b (b later than a).
func daysBetween(a, b time.Time) int {
	return int(toDate(b).Sub(toDate(a)).Hours() / 24)
}
