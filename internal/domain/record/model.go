package record

import (
	"time"

	"github.com/google/uuid"
)

// Condition maps to the condition table. ClinicalStatus is one of
// active | inactive | resolved | remission | unknown.
type Condition struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	Code           *string    `db:"code" json:"code,omitempty"`
	Display        string     `db:"display" json:"display"`
	ClinicalStatus string     `db:"clinical_status" json:"clinical_status"`
	OnsetDate      *time.Time `db:"onset_date" json:"onset_date,omitempty"`
	RecordedDate   *time.Time `db:"recorded_date" json:"recorded_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Observation maps to the observation table. The shape is deliberately loose:
// lab feeds routinely omit values, units, and effective times, so everything
// beyond identity is nullable. The insight normalizer turns these rows into
// typed values.
type Observation struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	Code          *string    `db:"code" json:"code,omitempty"`
	Display       *string    `db:"display" json:"display,omitempty"`
	Value         *float64   `db:"value" json:"value,omitempty"`
	Unit          *string    `db:"unit" json:"unit,omitempty"`
	EffectiveTime *time.Time `db:"effective_time" json:"effective_time,omitempty"`
	ReferenceLow  *float64   `db:"reference_low" json:"reference_low,omitempty"`
	ReferenceHigh *float64   `db:"reference_high" json:"reference_high,omitempty"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// CareGap maps to the care_gap table. Status is one of
// due | satisfied | not_applicable; Priority is high | medium | low.
// Status transitions are owned here, never by the insight engine.
type CareGap struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	Title             string     `db:"title" json:"title"`
	Category          *string    `db:"category" json:"category,omitempty"`
	Status            string     `db:"status" json:"status"`
	Priority          string     `db:"priority" json:"priority"`
	DueDate           *time.Time `db:"due_date" json:"due_date,omitempty"`
	LastPerformedDate *time.Time `db:"last_performed_date" json:"last_performed_date,omitempty"`
	RecommendedAction *string    `db:"recommended_action" json:"recommended_action,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// Medication maps to the medication table.
type Medication struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name      string     `db:"name" json:"name"`
	Dosage    *string    `db:"dosage" json:"dosage,omitempty"`
	Frequency *string    `db:"frequency" json:"frequency,omitempty"`
	Status    string     `db:"status" json:"status"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Allergy maps to the allergy table.
type Allergy struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	Substance    string     `db:"substance" json:"substance"`
	Reaction     *string    `db:"reaction" json:"reaction,omitempty"`
	Criticality  *string    `db:"criticality" json:"criticality,omitempty"`
	RecordedDate *time.Time `db:"recorded_date" json:"recorded_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Immunization maps to the immunization table.
type Immunization struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	VaccineName  string     `db:"vaccine_name" json:"vaccine_name"`
	DoseNumber   *int       `db:"dose_number" json:"dose_number,omitempty"`
	OccurredDate *time.Time `db:"occurred_date" json:"occurred_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ActiveConditionNames returns the display names of conditions whose clinical
// status is "active", the context the reference interpreter keys on.
func ActiveConditionNames(conditions []*Condition) []string {
	var names []string
	for _, c := range conditions {
		if c != nil && c.ClinicalStatus == "active" && c.Display != "" {
			names = append(names, c.Display)
		}
	}
	return names
}
