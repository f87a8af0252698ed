package insight

import (
	"fmt"
	"sort"
)

// conditionTrendRule links a chronic condition to the biomarker whose
// short-run movement is worth calling out, with the guideline cited on the
// generated insight.
type conditionTrendRule struct {
	Keywords []string
	Codes    []string
	Metric   string
	Citation string
}

var conditionTrendRules = []conditionTrendRule{
	{
		Keywords: []string{"diabetes", "diabetic"},
		Codes:    []string{"4548-4", "33747-0"},
		Metric:   "HbA1c",
		Citation: "American Diabetes Association, Standards of Care in Diabetes",
	},
	{
		Keywords: []string{"hypertension", "high blood pressure"},
		Codes:    []string{"8480-6"},
		Metric:   "Systolic blood pressure",
		Citation: "ACC/AHA Guideline for High Blood Pressure in Adults",
	},
	{
		Keywords: []string{"cardiovascular", "coronary", "heart disease", "atherosclerosis"},
		Codes:    []string{"13457-7", "18262-6"},
		Metric:   "LDL cholesterol",
		Citation: "AHA/ACC Guideline on the Management of Blood Cholesterol",
	},
}

var insightSeverityRank = map[InsightSeverity]int{
	InsightWarning:  0,
	InsightInfo:     1,
	InsightPositive: 2,
}

// Aggregate turns the category-level results into a prioritized list of
// textual insights: one overall-status insight derived from the composite
// score, an overdue-care callout when any action is critical, and
// condition-specific insights for short-run biomarker movement. Output is
// deterministic for a given input; ordering is most severe first.
func Aggregate(trends []TrendResult, actions []PriorityAction, activeConditions []string, score int) []Insight {
	insights := []Insight{overallStatus(score)}

	if overdue := countCritical(actions); overdue > 0 {
		plural := ""
		if overdue > 1 {
			plural = "s"
		}
		insights = append(insights, Insight{
			Title:       "Overdue preventive care",
			Description: fmt.Sprintf("%d preventive-care action%s past due. Schedule as soon as possible.", overdue, plural),
			Severity:    InsightWarning,
		})
	}

	for _, rule := range conditionTrendRules {
		if !hasCondition(activeConditions, rule.Keywords...) {
			continue
		}
		trend, ok := findTrend(trends, rule.Codes)
		if !ok {
			continue
		}
		switch trend.ShortRun() {
		case DeltaImproving:
			insights = append(insights, Insight{
				Title:       rule.Metric + " improving",
				Description: fmt.Sprintf("%s moved from %.1f to %.1f since the previous reading.", rule.Metric, previousValue(trend), latestValue(trend)),
				Severity:    InsightPositive,
				Citation:    rule.Citation,
			})
		case DeltaConcerning:
			insights = append(insights, Insight{
				Title:       rule.Metric + " worsening",
				Description: fmt.Sprintf("%s moved from %.1f to %.1f since the previous reading. Review management plan.", rule.Metric, previousValue(trend), latestValue(trend)),
				Severity:    InsightWarning,
				Citation:    rule.Citation,
			})
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insightSeverityRank[insights[i].Severity] < insightSeverityRank[insights[j].Severity]
	})
	return insights
}

func overallStatus(score int) Insight {
	switch {
	case score >= 80:
		return Insight{
			Title:       "Overall health status",
			Description: fmt.Sprintf("Composite health score is %d. Preventive care and biomarkers are largely on track.", score),
			Severity:    InsightPositive,
		}
	case score >= 60:
		return Insight{
			Title:       "Overall health status",
			Description: fmt.Sprintf("Composite health score is %d. A few items need attention.", score),
			Severity:    InsightInfo,
		}
	default:
		return Insight{
			Title:       "Overall health status",
			Description: fmt.Sprintf("Composite health score is %d. Several items need attention.", score),
			Severity:    InsightWarning,
		}
	}
}

func countCritical(actions []PriorityAction) int {
	n := 0
	for _, a := range actions {
		if a.Urgency == UrgencyCritical {
			n++
		}
	}
	return n
}

// findTrend returns the first trend matching any of the codes, in code order.
func findTrend(trends []TrendResult, codes []string) (TrendResult, bool) {
	for _, code := range codes {
		for _, t := range trends {
			if t.Code == code {
				return t, true
			}
		}
	}
	return TrendResult{}, false
}

func previousValue(t TrendResult) float64 {
	return t.OrderedValues[len(t.OrderedValues)-2].Value
}

func latestValue(t TrendResult) float64 {
	return t.OrderedValues[len(t.OrderedValues)-1].Value
}
