package insight

import (
	"strings"
	"testing"
)

func a1cTrend(previous, latest float64) TrendResult {
	return TrendResult{
		Code: "4548-4",
		Name: "Hemoglobin A1c",
		OrderedValues: []TrendPoint{
			{Value: previous},
			{Value: latest},
		},
		Direction: DirectionDecreasing,
	}
}

func TestAggregateEmptyInputsYieldsSinglePositiveInsight(t *testing.T) {
	insights := Aggregate(nil, nil, nil, 100)
	if len(insights) != 1 {
		t.Fatalf("len = %d, want 1", len(insights))
	}
	if insights[0].Severity != InsightPositive {
		t.Errorf("severity = %s, want positive", insights[0].Severity)
	}
	if !strings.Contains(insights[0].Description, "100") {
		t.Errorf("description should carry the score: %q", insights[0].Description)
	}
}

func TestAggregateScoreBands(t *testing.T) {
	tests := []struct {
		score int
		want  InsightSeverity
	}{
		{95, InsightPositive},
		{80, InsightPositive},
		{79, InsightInfo},
		{60, InsightInfo},
		{59, InsightWarning},
		{0, InsightWarning},
	}
	for _, tt := range tests {
		insights := Aggregate(nil, nil, nil, tt.score)
		if len(insights) != 1 || insights[0].Severity != tt.want {
			t.Errorf("score %d: got %+v, want single %s insight", tt.score, insights, tt.want)
		}
	}
}

func TestAggregateDiabetesImprovementCarriesCitation(t *testing.T) {
	insights := Aggregate(
		[]TrendResult{a1cTrend(7.9, 6.8)},
		nil,
		[]string{"Type 2 Diabetes Mellitus"},
		85,
	)
	var found *Insight
	for i := range insights {
		if strings.Contains(insights[i].Title, "HbA1c") {
			found = &insights[i]
		}
	}
	if found == nil {
		t.Fatalf("no HbA1c insight in %+v", insights)
	}
	if found.Severity != InsightPositive {
		t.Errorf("severity = %s, want positive", found.Severity)
	}
	if !strings.Contains(found.Citation, "Diabetes") {
		t.Errorf("citation = %q, want a diabetes guideline", found.Citation)
	}
	if !strings.Contains(found.Description, "7.9") || !strings.Contains(found.Description, "6.8") {
		t.Errorf("description should carry both readings: %q", found.Description)
	}
}

func TestAggregateSkipsTrendWithoutMatchingCondition(t *testing.T) {
	insights := Aggregate([]TrendResult{a1cTrend(7.9, 6.8)}, nil, nil, 85)
	for _, in := range insights {
		if strings.Contains(in.Title, "HbA1c") {
			t.Errorf("HbA1c insight generated without a diabetes condition: %+v", in)
		}
	}
}

func TestAggregateSkipsSteadyTrend(t *testing.T) {
	insights := Aggregate(
		[]TrendResult{a1cTrend(7.1, 7.0)},
		nil,
		[]string{"Type 2 Diabetes Mellitus"},
		85,
	)
	if len(insights) != 1 {
		t.Errorf("steady trend produced an insight: %+v", insights)
	}
}

func TestAggregateWorseningTrendIsWarning(t *testing.T) {
	insights := Aggregate(
		[]TrendResult{{
			Code:          "8480-6",
			OrderedValues: []TrendPoint{{Value: 128}, {Value: 145}},
		}},
		nil,
		[]string{"Essential hypertension"},
		70,
	)
	if len(insights) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(insights), insights)
	}
	// Warning sorts ahead of the info-band overall status.
	if insights[0].Severity != InsightWarning || !strings.Contains(insights[0].Title, "Systolic") {
		t.Errorf("first insight = %+v, want systolic warning", insights[0])
	}
}

func TestAggregateOverdueActionsCallout(t *testing.T) {
	actions := []PriorityAction{
		{Urgency: UrgencyCritical, DaysUntilDue: -5},
		{Urgency: UrgencyCritical, DaysUntilDue: -1},
		{Urgency: UrgencyHigh, DaysUntilDue: 7},
	}
	insights := Aggregate(nil, actions, nil, 70)
	var found *Insight
	for i := range insights {
		if insights[i].Title == "Overdue preventive care" {
			found = &insights[i]
		}
	}
	if found == nil {
		t.Fatalf("no overdue callout in %+v", insights)
	}
	if !strings.Contains(found.Description, "2") {
		t.Errorf("description should count 2 overdue actions: %q", found.Description)
	}
	if found.Severity != InsightWarning {
		t.Errorf("severity = %s, want warning", found.Severity)
	}
}

func TestAggregateOrdersMostSevereFirst(t *testing.T) {
	insights := Aggregate(
		[]TrendResult{a1cTrend(7.9, 6.8)},
		[]PriorityAction{{Urgency: UrgencyCritical, DaysUntilDue: -5}},
		[]string{"Type 2 Diabetes Mellitus"},
		85,
	)
	rank := map[InsightSeverity]int{InsightWarning: 0, InsightInfo: 1, InsightPositive: 2}
	for i := 1; i < len(insights); i++ {
		if rank[insights[i-1].Severity] > rank[insights[i].Severity] {
			t.Errorf("insights out of severity order: %+v", insights)
		}
	}
}
