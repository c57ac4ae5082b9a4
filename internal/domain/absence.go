package domain

import "time"

// AbsenceUnknownDays is the sentinel for members who never checked in or
// whose check-in timestamp was unparseable. callers that need to tell
// "never checked in" from "absent a very long time" should use the Known
// flag instead of comparing against the sentinel.
const AbsenceUnknownDays = 999

// DaysAbsent is the whole-day count since a member's last check-in.
type DaysAbsent struct {
	days  int
	known bool
}

// UnknownAbsence returns the sentinel absence.
func UnknownAbsence() DaysAbsent {
	return DaysAbsent{days: AbsenceUnknownDays}
}

// Known returns true if the member has a recorded check-in.
func (a DaysAbsent) Known() bool {
	return a.known
}

// Days returns the absence in whole days. always non-negative;
// AbsenceUnknownDays when no check-in exists.
func (a DaysAbsent) Days() int {
	return a.days
}

// TrackAbsence computes days absent from the last check-in timestamp.
// floored to whole days and clamped at zero: a check-in in the future
// (clock skew, bad import data) counts as zero days absent, never negative.
func TrackAbsence(lastCheckInAt time.Time, hasCheckedIn bool, now time.Time) DaysAbsent {
	if !hasCheckedIn {
		return UnknownAbsence()
	}

	days := int(now.Sub(lastCheckInAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return DaysAbsent{days: days, known: true}
}
