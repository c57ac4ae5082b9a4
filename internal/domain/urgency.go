package domain

import "time"

// UrgencyHighlight is an enquiry's follow-up priority classification.
type UrgencyHighlight string

const (
	UrgencyOverdue   UrgencyHighlight = "overdue"
	UrgencyToday     UrgencyHighlight = "today"
	UrgencyNormal    UrgencyHighlight = "normal"
	UrgencyConverted UrgencyHighlight = "converted"
)

// String returns the string representation of the UrgencyHighlight.
func (h UrgencyHighlight) String() string {
	return string(h)
}

// EnquiryUrgency is the derived urgency view attached to one enquiry.
// Badge is empty when no badge should be rendered.
type EnquiryUrgency struct {
	Highlight UrgencyHighlight
	Badge     string
}

// badge text per highlight. converted enquiries never carry a badge,
// even when the date rules would otherwise fire.
const (
	badgeOverdue = "Overdue"
	badgeToday   = "Follow-up Today"
)

// ClassifyUrgency derives an enquiry's follow-up urgency. first matching
// rule wins:
//
//  1. converted enquiries are done — no urgency, no badge
//  2. a known expected join date that has come and gone drives the
//     highlight: past the overdue threshold means overdue, otherwise
//     today's window
//  3. failing that, a flagged follow-up with a known last-follow-up date:
//     stale past the threshold means overdue, a follow-up done today
//     means today
//  4. everything else is normal
//
// a Lost enquiry deliberately does not short-circuit: its highlight is
// computed like any other, and callers filter closed enquiries out of
// actionable lists via EnquiryStatus.IsActionable.
func ClassifyUrgency(e EnquiryRecord, now time.Time, th RetentionThresholds) EnquiryUrgency {
	if e.Status() == EnquiryStatusConverted {
		return EnquiryUrgency{Highlight: UrgencyConverted}
	}

	if e.ExpectedJoinDate().Known() {
		daysOver := e.ExpectedJoinDate().DaysSince(now)
		if daysOver >= th.OverdueThresholdDays {
			return EnquiryUrgency{Highlight: UrgencyOverdue, Badge: badgeOverdue}
		}
		if daysOver >= 0 {
			return EnquiryUrgency{Highlight: UrgencyToday, Badge: badgeToday}
		}
		// expected join date still ahead: fall through to the follow-up rule
	}

	if e.FollowUpRequired() && e.LastFollowUpDate().Known() {
		daysSinceFollowUp := e.LastFollowUpDate().DaysSince(now)
		if daysSinceFollowUp >= th.OverdueThresholdDays {
			return EnquiryUrgency{Highlight: UrgencyOverdue, Badge: badgeOverdue}
		}
		if daysSinceFollowUp == 0 {
			return EnquiryUrgency{Highlight: UrgencyToday, Badge: badgeToday}
		}
	}

	return EnquiryUrgency{Highlight: UrgencyNormal}
}
