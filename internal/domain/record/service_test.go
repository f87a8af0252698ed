package record

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type conditionRepoStub struct {
	created *Condition
	updated *Condition
}

func (s *conditionRepoStub) Create(ctx context.Context, c *Condition) error { s.created = c; return nil }
func (s *conditionRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return nil, errors.New("not found")
}
func (s *conditionRepoStub) Update(ctx context.Context, c *Condition) error { s.updated = c; return nil }
func (s *conditionRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *conditionRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error) {
	return nil, 0, nil
}

type observationRepoStub struct {
	created *Observation
}

func (s *observationRepoStub) Create(ctx context.Context, o *Observation) error {
	s.created = o
	return nil
}
func (s *observationRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*Observation, error) {
	return nil, errors.New("not found")
}
func (s *observationRepoStub) Update(ctx context.Context, o *Observation) error { return nil }
func (s *observationRepoStub) Delete(ctx context.Context, id uuid.UUID) error   { return nil }
func (s *observationRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Observation, int, error) {
	return nil, 0, nil
}

type careGapRepoStub struct {
	created *CareGap
}

func (s *careGapRepoStub) Create(ctx context.Context, g *CareGap) error { s.created = g; return nil }
func (s *careGapRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*CareGap, error) {
	return nil, errors.New("not found")
}
func (s *careGapRepoStub) Update(ctx context.Context, g *CareGap) error { return nil }
func (s *careGapRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (s *careGapRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CareGap, int, error) {
	return nil, 0, nil
}

type medicationRepoStub struct{}

func (medicationRepoStub) Create(ctx context.Context, m *Medication) error { return nil }
func (medicationRepoStub) Delete(ctx context.Context, id uuid.UUID) error  { return nil }
func (medicationRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Medication, int, error) {
	return nil, 0, nil
}

type allergyRepoStub struct{}

func (allergyRepoStub) Create(ctx context.Context, a *Allergy) error      { return nil }
func (allergyRepoStub) Delete(ctx context.Context, id uuid.UUID) error    { return nil }
func (allergyRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Allergy, int, error) {
	return nil, 0, nil
}

type immunizationRepoStub struct{}

func (immunizationRepoStub) Create(ctx context.Context, im *Immunization) error { return nil }
func (immunizationRepoStub) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (immunizationRepoStub) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	return nil, 0, nil
}

func newStubService() (*Service, *conditionRepoStub, *observationRepoStub, *careGapRepoStub) {
	conds := &conditionRepoStub{}
	obs := &observationRepoStub{}
	gaps := &careGapRepoStub{}
	svc := NewService(conds, obs, gaps, medicationRepoStub{}, allergyRepoStub{}, immunizationRepoStub{})
	return svc, conds, obs, gaps
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateConditionValidation(t *testing.T) {
	svc, conds, _, _ := newStubService()
	ctx := context.Background()

	if err := svc.CreateCondition(ctx, &Condition{Display: "Hypertension"}); err == nil {
		t.Error("missing patient_id accepted")
	}
	if err := svc.CreateCondition(ctx, &Condition{PatientID: uuid.New()}); err == nil {
		t.Error("missing display accepted")
	}
	if err := svc.CreateCondition(ctx, &Condition{
		PatientID: uuid.New(), Display: "Hypertension", ClinicalStatus: "cured",
	}); err == nil {
		t.Error("invalid clinical_status accepted")
	}

	c := &Condition{PatientID: uuid.New(), Display: "Hypertension"}
	if err := svc.CreateCondition(ctx, c); err != nil {
		t.Fatalf("valid condition rejected: %v", err)
	}
	if c.ClinicalStatus != "unknown" {
		t.Errorf("clinical_status = %q, want default unknown", c.ClinicalStatus)
	}
	if conds.created != c {
		t.Error("condition not passed to repo")
	}
}

func TestUpdateConditionValidatesStatusWhenSet(t *testing.T) {
	svc, conds, _, _ := newStubService()
	ctx := context.Background()

	if err := svc.UpdateCondition(ctx, &Condition{ClinicalStatus: "bogus"}); err == nil {
		t.Error("invalid clinical_status accepted on update")
	}
	c := &Condition{ID: uuid.New(), ClinicalStatus: "resolved"}
	if err := svc.UpdateCondition(ctx, c); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}
	if conds.updated != c {
		t.Error("condition not passed to repo")
	}
}

func TestCreateObservationValidation(t *testing.T) {
	svc, _, obs, _ := newStubService()
	ctx := context.Background()

	if err := svc.CreateObservation(ctx, &Observation{Code: strPtr("4548-4")}); err == nil {
		t.Error("missing patient_id accepted")
	}
	if err := svc.CreateObservation(ctx, &Observation{PatientID: uuid.New()}); err == nil {
		t.Error("observation without code or value accepted")
	}

	// A value alone is enough.
	o := &Observation{PatientID: uuid.New(), Value: floatPtr(98.6)}
	if err := svc.CreateObservation(ctx, o); err != nil {
		t.Fatalf("valued observation rejected: %v", err)
	}
	if o.Status != "final" {
		t.Errorf("status = %q, want default final", o.Status)
	}
	if obs.created != o {
		t.Error("observation not passed to repo")
	}

	// A code alone is enough too.
	if err := svc.CreateObservation(ctx, &Observation{PatientID: uuid.New(), Code: strPtr("4548-4")}); err != nil {
		t.Errorf("coded observation rejected: %v", err)
	}
}

func TestCreateCareGapValidation(t *testing.T) {
	svc, _, _, gaps := newStubService()
	ctx := context.Background()

	if err := svc.CreateCareGap(ctx, &CareGap{Title: "Eye exam"}); err == nil {
		t.Error("missing patient_id accepted")
	}
	if err := svc.CreateCareGap(ctx, &CareGap{PatientID: uuid.New()}); err == nil {
		t.Error("missing title accepted")
	}
	if err := svc.CreateCareGap(ctx, &CareGap{
		PatientID: uuid.New(), Title: "Eye exam", Status: "pending",
	}); err == nil {
		t.Error("invalid status accepted")
	}
	if err := svc.CreateCareGap(ctx, &CareGap{
		PatientID: uuid.New(), Title: "Eye exam", Priority: "urgent",
	}); err == nil {
		t.Error("invalid priority accepted")
	}

	g := &CareGap{PatientID: uuid.New(), Title: "Eye exam"}
	if err := svc.CreateCareGap(ctx, g); err != nil {
		t.Fatalf("valid gap rejected: %v", err)
	}
	if g.Status != "due" || g.Priority != "medium" {
		t.Errorf("defaults = %q/%q, want due/medium", g.Status, g.Priority)
	}
	if gaps.created != g {
		t.Error("gap not passed to repo")
	}
}

func TestCreateMedicationValidation(t *testing.T) {
	svc, _, _, _ := newStubService()
	ctx := context.Background()

	if err := svc.CreateMedication(ctx, &Medication{Name: "Metformin"}); err == nil {
		t.Error("missing patient_id accepted")
	}
	if err := svc.CreateMedication(ctx, &Medication{PatientID: uuid.New()}); err == nil {
		t.Error("missing name accepted")
	}
	m := &Medication{PatientID: uuid.New(), Name: "Metformin"}
	if err := svc.CreateMedication(ctx, m); err != nil {
		t.Fatalf("valid medication rejected: %v", err)
	}
	if m.Status != "active" {
		t.Errorf("status = %q, want default active", m.Status)
	}
}

func TestCreateAllergyAndImmunizationValidation(t *testing.T) {
	svc, _, _, _ := newStubService()
	ctx := context.Background()

	if err := svc.CreateAllergy(ctx, &Allergy{PatientID: uuid.New()}); err == nil {
		t.Error("allergy without substance accepted")
	}
	if err := svc.CreateAllergy(ctx, &Allergy{PatientID: uuid.New(), Substance: "Penicillin"}); err != nil {
		t.Errorf("valid allergy rejected: %v", err)
	}

	if err := svc.CreateImmunization(ctx, &Immunization{PatientID: uuid.New()}); err == nil {
		t.Error("immunization without vaccine accepted")
	}
	if err := svc.CreateImmunization(ctx, &Immunization{PatientID: uuid.New(), VaccineName: "Influenza"}); err != nil {
		t.Errorf("valid immunization rejected: %v", err)
	}
}
