package session

import "time"

// Expired reports whether a session whose last activity was lastTouched
// is past the inactivity window at the given instant.
//
// A session is ACTIVE iff lastTouched <= now AND lastTouched > now-window:
// the boundary is inclusive on the present side (lastTouched exactly at now
// is active) and exclusive on the past side (lastTouched exactly window ago
// is expired). A zero or future timestamp is expired, fail-safe.
func Expired(lastTouched, now time.Time, window time.Duration) bool {
	if lastTouched.IsZero() {
		return true
	}
	if lastTouched.After(now) {
		return true
	}
	return !lastTouched.After(now.Add(-window))
}
