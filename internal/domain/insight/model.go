package insight

import (
	"time"

	"github.com/google/uuid"
)

// Severity bands for a single interpreted observation.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ClinicalObservation is the typed form of a raw observation row. Value and
// Timestamp stay nullable: a nil value excludes the point from numeric
// analysis but not from display, and a nil timestamp excludes it from
// chronological ordering.
type ClinicalObservation struct {
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Value         *float64   `json:"value"`
	Unit          string     `json:"unit"`
	Timestamp     *time.Time `json:"timestamp"`
	ReferenceLow  *float64   `json:"reference_low,omitempty"`
	ReferenceHigh *float64   `json:"reference_high,omitempty"`
}

// Interpretation is the outcome of checking one value against the reference
// table. An unknown code yields an empty Text and SeverityNormal.
type Interpretation struct {
	Code     string   `json:"code"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Concerning reports whether the interpretation should count against the
// composite score.
func (i Interpretation) Concerning() bool {
	return i.Severity == SeverityWarning || i.Severity == SeverityCritical
}

// TrendPoint is a single dated value inside a trend.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Direction of a biomarker over its full history.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// TrendResult summarizes one biomarker's history. It is only produced for
// codes with at least two dated numeric points.
type TrendResult struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	OrderedValues []TrendPoint `json:"ordered_values"`
	Direction     Direction    `json:"direction"`
	Min           float64      `json:"min"`
	Max           float64      `json:"max"`
	Mean          float64      `json:"mean"`
}

// DeltaClass is the short-run classification of the two most recent points,
// kept separate from the long-run Direction.
type DeltaClass string

const (
	DeltaImproving  DeltaClass = "improving"
	DeltaConcerning DeltaClass = "concerning"
	DeltaSteady     DeltaClass = "steady"
)

// Urgency tiers for outstanding preventive-care actions.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// PriorityAction is a ranked outstanding care gap.
type PriorityAction struct {
	SourceID     string  `json:"source_id"`
	Urgency      Urgency `json:"urgency"`
	Description  string  `json:"description"`
	DaysUntilDue int     `json:"days_until_due"`
}

// InsightSeverity orders generated insights, most severe first.
type InsightSeverity string

const (
	InsightPositive InsightSeverity = "positive"
	InsightWarning  InsightSeverity = "warning"
	InsightInfo     InsightSeverity = "info"
)

// Insight is a single human-readable takeaway.
type Insight struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    InsightSeverity `json:"severity"`
	Citation    string          `json:"citation,omitempty"`
}

// PatientSummary bundles every artifact the engine derives for one patient at
// one evaluation time.
type PatientSummary struct {
	PatientID       uuid.UUID        `json:"patient_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Score           int              `json:"score"`
	Interpretations []Interpretation `json:"interpretations"`
	Trends          []TrendResult    `json:"trends"`
	PriorityActions []PriorityAction `json:"priority_actions"`
	Insights        []Insight        `json:"insights"`
}
