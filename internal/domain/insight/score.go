package insight

import (
	"github.com/carelens/carelens/internal/domain/record"
)

// Composite score weights. The score is a fixed, inspectable rule, not a
// clinical risk model.
const (
	scoreBase          = 100
	dueGapPenalty      = 10
	concerningPenalty  = 5
	satisfiedGapReward = 5
)

// Score combines care-gap standing and interpreted observations into a single
// 0-100 value. Pure summation, so the result is independent of input order.
// Empty inputs score 100.
func Score(gaps []*record.CareGap, interpretations []Interpretation) int {
	score := scoreBase
	for _, g := range gaps {
		if g == nil {
			continue
		}
		switch g.Status {
		case "due":
			score -= dueGapPenalty
		case "satisfied":
			score += satisfiedGapReward
		}
	}
	for _, interp := range interpretations {
		if interp.Concerning() {
			score -= concerningPenalty
		}
	}
	return clampScore(score)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
