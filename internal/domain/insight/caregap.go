package insight

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carelens/carelens/internal/domain/record"
)

const (
	// DefaultTopActions is how many ranked actions the API returns when the
	// caller does not ask for a specific count.
	DefaultTopActions = 3

	// A care gap without a due date is ranked on a 30-day horizon rather than
	// treated as urgent or dateless.
	noDueDateHorizonDays = 30
)

var urgencyRank = map[Urgency]int{
	UrgencyCritical: 0,
	UrgencyHigh:     1,
	UrgencyMedium:   2,
}

// Prioritize ranks outstanding care gaps by urgency at the given evaluation
// time. Only gaps with status "due" participate; malformed gaps (missing id
// or title) are skipped silently. The result is stably sorted by
// (urgency, days until due) and truncated to limit entries (DefaultTopActions
// when limit is not positive).
func Prioritize(gaps []*record.CareGap, now time.Time, limit int) []PriorityAction {
	if limit <= 0 {
		limit = DefaultTopActions
	}

	actions := make([]PriorityAction, 0, len(gaps))
	for _, g := range gaps {
		if g == nil || g.Status != "due" {
			continue
		}
		if g.ID == uuid.Nil || g.Title == "" {
			continue
		}

		days := noDueDateHorizonDays
		if g.DueDate != nil {
			days = daysBetween(now, *g.DueDate)
		}

		actions = append(actions, PriorityAction{
			SourceID:     g.ID.String(),
			Urgency:      classifyUrgency(days, g.Priority),
			Description:  describeGap(g),
			DaysUntilDue: days,
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if urgencyRank[actions[i].Urgency] != urgencyRank[actions[j].Urgency] {
			return urgencyRank[actions[i].Urgency] < urgencyRank[actions[j].Urgency]
		}
		return actions[i].DaysUntilDue < actions[j].DaysUntilDue
	})

	if len(actions) > limit {
		actions = actions[:limit]
	}
	return actions
}

func classifyUrgency(daysUntilDue int, declaredPriority string) Urgency {
	switch {
	case daysUntilDue < 0:
		return UrgencyCritical
	case daysUntilDue <= 14 || declaredPriority == "high":
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

func describeGap(g *record.CareGap) string {
	if g.RecommendedAction != nil && *g.RecommendedAction != "" {
		return g.Title + ": " + *g.RecommendedAction
	}
	return g.Title
}

// daysBetween returns whole days from now until due, floored so that any
// overdue gap counts as negative.
func daysBetween(now, due time.Time) int {
	return int(math.Floor(due.Sub(now).Hours() / 24))
}
