package domain

import (
	"sort"
	"strings"
	"time"
)

// personal training plans are a higher-revenue segment, matched loosely
// against free-text plan names.
var personalTrainingKeywords = []string{"pt", "personal"}

func isPersonalTrainingPlan(planType string) bool {
	plan := strings.ToLower(planType)
	for _, kw := range personalTrainingKeywords {
		if strings.Contains(plan, kw) {
			return true
		}
	}
	return false
}

// SortByOutreachPriority orders a bucket's members for contact, most
// urgent first. the composite key, descending:
//
//  1. days absent — the longer someone hasn't shown up, the more urgent
//     the retention conversation
//  2. new-member flag — recent joiners are higher flight-risk
//  3. personal-training flag — higher-revenue segment
//
// the sort is stable, so ties keep their snapshot order, which gives the
// roster a deterministic rendering.
func SortByOutreachPriority(members []ClassifiedMember, now time.Time, th RetentionThresholds) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]

		if a.DaysAbsent.Days() != b.DaysAbsent.Days() {
			return a.DaysAbsent.Days() > b.DaysAbsent.Days()
		}

		aNew := a.Record.IsNewMember(now, th.NewMemberWindowDays)
		bNew := b.Record.IsNewMember(now, th.NewMemberWindowDays)
		if aNew != bNew {
			return aNew
		}

		aPT := a.Record.IsPersonalTraining()
		bPT := b.Record.IsPersonalTraining()
		if aPT != bPT {
			return aPT
		}

		return false
	})
}
