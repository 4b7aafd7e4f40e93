package progression

import "time"

// NextStreak computes the consecutive-day counter after a qualifying event
// (login or quest completion) at now. Comparison is by calendar day in now's
// location, not a rolling 24h window: two events 23 hours apart that cross
// local midnight are different days, two events 23:59 apart inside the same
// local day are the same day.
func NextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	prev := last.In(now.Location())
	switch {
	case sameDay(prev, now):
		if current < 1 {
			return 1
		}
		return current
	case sameDay(prev, now.AddDate(0, 0, -1)):
		return current + 1
	default:
		// Gap of 2+ days, or a last-activity timestamp in the future.
		return 1
	}
}

// sameDay reports year/month/day equality.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
