package insight

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carelens/carelens/internal/domain/record"
)

type mockConditionRepo struct {
	conditions []*record.Condition
	err        error
}

func (m *mockConditionRepo) Create(ctx context.Context, c *record.Condition) error { return nil }
func (m *mockConditionRepo) GetByID(ctx context.Context, id uuid.UUID) (*record.Condition, error) {
	return nil, errors.New("not found")
}
func (m *mockConditionRepo) Update(ctx context.Context, c *record.Condition) error { return nil }
func (m *mockConditionRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (m *mockConditionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*record.Condition, int, error) {
	return m.conditions, len(m.conditions), m.err
}

type mockObservationRepo struct {
	observations []*record.Observation
	err          error
}

func (m *mockObservationRepo) Create(ctx context.Context, o *record.Observation) error { return nil }
func (m *mockObservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*record.Observation, error) {
	return nil, errors.New("not found")
}
func (m *mockObservationRepo) Update(ctx context.Context, o *record.Observation) error { return nil }
func (m *mockObservationRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (m *mockObservationRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*record.Observation, int, error) {
	return m.observations, len(m.observations), m.err
}

type mockCareGapRepo struct {
	gaps []*record.CareGap
	err  error
}

func (m *mockCareGapRepo) Create(ctx context.Context, g *record.CareGap) error { return nil }
func (m *mockCareGapRepo) GetByID(ctx context.Context, id uuid.UUID) (*record.CareGap, error) {
	return nil, errors.New("not found")
}
func (m *mockCareGapRepo) Update(ctx context.Context, g *record.CareGap) error { return nil }
func (m *mockCareGapRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (m *mockCareGapRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*record.CareGap, int, error) {
	return m.gaps, len(m.gaps), m.err
}

func newTestService(conds []*record.Condition, obs []*record.Observation, gaps []*record.CareGap) *Service {
	return NewService(
		&mockConditionRepo{conditions: conds},
		&mockObservationRepo{observations: obs},
		&mockCareGapRepo{gaps: gaps},
		DefaultTopActions,
	)
}

func TestSummaryEmptyChart(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	summary, err := svc.Summary(context.Background(), uuid.New(), at, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Score != 100 {
		t.Errorf("score = %d, want 100", summary.Score)
	}
	if len(summary.Trends) != 0 || len(summary.PriorityActions) != 0 || len(summary.Interpretations) != 0 {
		t.Errorf("empty chart produced derived data: %+v", summary)
	}
	if len(summary.Insights) != 1 || summary.Insights[0].Severity != InsightPositive {
		t.Errorf("insights = %+v, want exactly one positive", summary.Insights)
	}
	if !summary.GeneratedAt.Equal(at) {
		t.Errorf("generated at = %v, want %v", summary.GeneratedAt, at)
	}
}

func TestSummaryControlledDiabetic(t *testing.T) {
	patientID := uuid.New()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := at.AddDate(0, -3, 0)

	conds := []*record.Condition{{
		ID:             uuid.New(),
		PatientID:      patientID,
		Display:        "Type 2 Diabetes Mellitus",
		ClinicalStatus: "active",
	}}
	obs := []*record.Observation{
		{ID: uuid.New(), PatientID: patientID, Code: strPtr("4548-4"), Value: floatPtr(7.9), EffectiveTime: &earlier},
		{ID: uuid.New(), PatientID: patientID, Code: strPtr("4548-4"), Value: floatPtr(6.8), EffectiveTime: &at},
	}

	svc := newTestService(conds, obs, nil)
	summary, err := svc.Summary(context.Background(), patientID, at, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// Latest reading interpreted in the diabetic context.
	if len(summary.Interpretations) != 1 {
		t.Fatalf("interpretations = %+v, want 1", summary.Interpretations)
	}
	if summary.Interpretations[0].Text != "Diabetic, well controlled" {
		t.Errorf("text = %q", summary.Interpretations[0].Text)
	}
	if summary.Score != 100 {
		t.Errorf("score = %d, want 100", summary.Score)
	}

	if len(summary.Trends) != 1 || summary.Trends[0].Direction != DirectionDecreasing {
		t.Errorf("trends = %+v, want one decreasing", summary.Trends)
	}

	var improving bool
	for _, in := range summary.Insights {
		if in.Severity == InsightPositive && in.Citation != "" {
			improving = true
		}
	}
	if !improving {
		t.Errorf("no cited improvement insight in %+v", summary.Insights)
	}
}

func TestSummaryInterpretsOnlyLatestValuePerCode(t *testing.T) {
	patientID := uuid.New()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := at.AddDate(0, -6, 0)

	// The old 9.4 reading must feed the trend but not the score.
	obs := []*record.Observation{
		{ID: uuid.New(), PatientID: patientID, Code: strPtr("4548-4"), Value: floatPtr(9.4), EffectiveTime: &earlier},
		{ID: uuid.New(), PatientID: patientID, Code: strPtr("4548-4"), Value: floatPtr(5.4), EffectiveTime: &at},
	}
	svc := newTestService(nil, obs, nil)

	summary, err := svc.Summary(context.Background(), patientID, at, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary.Interpretations) != 1 || summary.Interpretations[0].Severity != SeverityNormal {
		t.Errorf("interpretations = %+v, want single normal", summary.Interpretations)
	}
	if summary.Score != 100 {
		t.Errorf("score = %d, want 100", summary.Score)
	}
	if len(summary.Trends) != 1 || len(summary.Trends[0].OrderedValues) != 2 {
		t.Errorf("trend should keep full history: %+v", summary.Trends)
	}
}

func TestSummaryIdempotent(t *testing.T) {
	patientID := uuid.New()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	due := at.AddDate(0, 0, -3)

	gaps := []*record.CareGap{{
		ID: uuid.New(), PatientID: patientID, Title: "Annual eye exam",
		Status: "due", Priority: "medium", DueDate: &due,
	}}
	obs := []*record.Observation{
		{ID: uuid.New(), PatientID: patientID, Code: strPtr("8480-6"), Value: floatPtr(145), EffectiveTime: &at},
	}
	svc := newTestService(nil, obs, gaps)

	first, err := svc.Summary(context.Background(), patientID, at, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	second, err := svc.Summary(context.Background(), patientID, at, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same chart at same instant diverged:\n%+v\n%+v", first, second)
	}
}

func TestSummaryZeroTimeUsesClock(t *testing.T) {
	pinned := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(nil, nil, nil).WithClock(func() time.Time { return pinned })

	summary, err := svc.Summary(context.Background(), uuid.New(), time.Time{}, 0)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !summary.GeneratedAt.Equal(pinned) {
		t.Errorf("generated at = %v, want clock value %v", summary.GeneratedAt, pinned)
	}
}

func TestSummaryPropagatesRepoError(t *testing.T) {
	svc := NewService(
		&mockConditionRepo{err: errors.New("connection reset")},
		&mockObservationRepo{},
		&mockCareGapRepo{},
		DefaultTopActions,
	)
	if _, err := svc.Summary(context.Background(), uuid.New(), time.Now(), 0); err == nil {
		t.Fatal("expected error from condition repo")
	}
}

func TestPriorityActionsHonorsTopN(t *testing.T) {
	patientID := uuid.New()
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var gaps []*record.CareGap
	for i := 0; i < 5; i++ {
		due := at.AddDate(0, 0, 20+i)
		gaps = append(gaps, &record.CareGap{
			ID: uuid.New(), PatientID: patientID, Title: "Screening",
			Status: "due", Priority: "medium", DueDate: &due,
		})
	}
	svc := newTestService(nil, nil, gaps)

	actions, err := svc.PriorityActions(context.Background(), patientID, at, 2)
	if err != nil {
		t.Fatalf("PriorityActions: %v", err)
	}
	if len(actions) != 2 {
		t.Errorf("len = %d, want 2", len(actions))
	}
}
