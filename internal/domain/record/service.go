package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	conditions    ConditionRepository
	observations  ObservationRepository
	careGaps      CareGapRepository
	medications   MedicationRepository
	allergies     AllergyRepository
	immunizations ImmunizationRepository
}

func NewService(
	conditions ConditionRepository,
	observations ObservationRepository,
	careGaps CareGapRepository,
	medications MedicationRepository,
	allergies AllergyRepository,
	immunizations ImmunizationRepository,
) *Service {
	return &Service{
		conditions:    conditions,
		observations:  observations,
		careGaps:      careGaps,
		medications:   medications,
		allergies:     allergies,
		immunizations: immunizations,
	}
}

// -- Condition --

var validClinicalStatuses = map[string]bool{
	"active": true, "inactive": true, "resolved": true,
	"remission": true, "unknown": true,
}

func (s *Service) CreateCondition(ctx context.Context, c *Condition) error {
	if c.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if c.Display == "" {
		return fmt.Errorf("display is required")
	}
	if c.ClinicalStatus == "" {
		c.ClinicalStatus = "unknown"
	}
	if !validClinicalStatuses[c.ClinicalStatus] {
		return fmt.Errorf("invalid clinical_status: %s", c.ClinicalStatus)
	}
	return s.conditions.Create(ctx, c)
}

func (s *Service) GetCondition(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return s.conditions.GetByID(ctx, id)
}

func (s *Service) UpdateCondition(ctx context.Context, c *Condition) error {
	if c.ClinicalStatus != "" && !validClinicalStatuses[c.ClinicalStatus] {
		return fmt.Errorf("invalid clinical_status: %s", c.ClinicalStatus)
	}
	return s.conditions.Update(ctx, c)
}

func (s *Service) DeleteCondition(ctx context.Context, id uuid.UUID) error {
	return s.conditions.Delete(ctx, id)
}

func (s *Service) ListConditionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error) {
	return s.conditions.ListByPatient(ctx, patientID, limit, offset)
}

// -- Observation --

func (s *Service) CreateObservation(ctx context.Context, o *Observation) error {
	if o.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	// A row carrying neither a code nor a value is unusable for both display
	// and analysis.
	if (o.Code == nil || *o.Code == "") && o.Value == nil {
		return fmt.Errorf("observation needs a code or a value")
	}
	if o.Status == "" {
		o.Status = "final"
	}
	return s.observations.Create(ctx, o)
}

func (s *Service) GetObservation(ctx context.Context, id uuid.UUID) (*Observation, error) {
	return s.observations.GetByID(ctx, id)
}

func (s *Service) UpdateObservation(ctx context.Context, o *Observation) error {
	return s.observations.Update(ctx, o)
}

func (s *Service) DeleteObservation(ctx context.Context, id uuid.UUID) error {
	return s.observations.Delete(ctx, id)
}

func (s *Service) ListObservationsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Observation, int, error) {
	return s.observations.ListByPatient(ctx, patientID, limit, offset)
}

// -- Care Gap --

var validCareGapStatuses = map[string]bool{
	"due": true, "satisfied": true, "not_applicable": true,
}

var validCareGapPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

func (s *Service) CreateCareGap(ctx context.Context, g *CareGap) error {
	if g.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	if g.Status == "" {
		g.Status = "due"
	}
	if !validCareGapStatuses[g.Status] {
		return fmt.Errorf("invalid status: %s", g.Status)
	}
	if g.Priority == "" {
		g.Priority = "medium"
	}
	if !validCareGapPriorities[g.Priority] {
		return fmt.Errorf("invalid priority: %s", g.Priority)
	}
	return s.careGaps.Create(ctx, g)
}

func (s *Service) GetCareGap(ctx context.Context, id uuid.UUID) (*CareGap, error) {
	return s.careGaps.GetByID(ctx, id)
}

func (s *Service) UpdateCareGap(ctx context.Context, g *CareGap) error {
	if g.Status != "" && !validCareGapStatuses[g.Status] {
		return fmt.Errorf("invalid status: %s", g.Status)
	}
	if g.Priority != "" && !validCareGapPriorities[g.Priority] {
		return fmt.Errorf("invalid priority: %s", g.Priority)
	}
	return s.careGaps.Update(ctx, g)
}

func (s *Service) DeleteCareGap(ctx context.Context, id uuid.UUID) error {
	return s.careGaps.Delete(ctx, id)
}

func (s *Service) ListCareGapsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CareGap, int, error) {
	return s.careGaps.ListByPatient(ctx, patientID, limit, offset)
}

// -- Medication --

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Status == "" {
		m.Status = "active"
	}
	return s.medications.Create(ctx, m)
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

func (s *Service) ListMedicationsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Medication, int, error) {
	return s.medications.ListByPatient(ctx, patientID, limit, offset)
}

// -- Allergy --

func (s *Service) CreateAllergy(ctx context.Context, a *Allergy) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.Substance == "" {
		return fmt.Errorf("substance is required")
	}
	return s.allergies.Create(ctx, a)
}

func (s *Service) DeleteAllergy(ctx context.Context, id uuid.UUID) error {
	return s.allergies.Delete(ctx, id)
}

func (s *Service) ListAllergiesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Allergy, int, error) {
	return s.allergies.ListByPatient(ctx, patientID, limit, offset)
}

// -- Immunization --

func (s *Service) CreateImmunization(ctx context.Context, im *Immunization) error {
	if im.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if im.VaccineName == "" {
		return fmt.Errorf("vaccine_name is required")
	}
	return s.immunizations.Create(ctx, im)
}

func (s *Service) DeleteImmunization(ctx context.Context, id uuid.UUID) error {
	return s.immunizations.Delete(ctx, id)
}

func (s *Service) ListImmunizationsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	return s.immunizations.ListByPatient(ctx, patientID, limit, offset)
}
