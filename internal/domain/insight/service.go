package insight

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carelens/carelens/internal/domain/record"
)

// snapshotLimit bounds how much patient history one evaluation loads. Well
// above anything a single chart accumulates in practice.
const snapshotLimit = 1000

// Service derives insights from a patient's stored record. All derivation is
// pure; the service only loads the snapshot and injects the evaluation time,
// so the same chart at the same instant always yields the same summary.
type Service struct {
	conditions   record.ConditionRepository
	observations record.ObservationRepository
	careGaps     record.CareGapRepository
	topActions   int
	clock        func() time.Time
}

func NewService(
	conditions record.ConditionRepository,
	observations record.ObservationRepository,
	careGaps record.CareGapRepository,
	topActions int,
) *Service {
	if topActions <= 0 {
		topActions = DefaultTopActions
	}
	return &Service{
		conditions:   conditions,
		observations: observations,
		careGaps:     careGaps,
		topActions:   topActions,
		clock:        time.Now,
	}
}

// WithClock overrides the evaluation clock. Tests use this to pin "now".
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Summary evaluates the full pipeline for one patient. A zero "at" means
// evaluate now; topN <= 0 falls back to the configured action count.
func (s *Service) Summary(ctx context.Context, patientID uuid.UUID, at time.Time, topN int) (*PatientSummary, error) {
	if at.IsZero() {
		at = s.clock()
	}
	if topN <= 0 {
		topN = s.topActions
	}

	snap, err := s.loadSnapshot(ctx, patientID)
	if err != nil {
		return nil, err
	}

	active := record.ActiveConditionNames(snap.conditions)
	normalized := NormalizeAll(snap.observations)
	interpretations := latestInterpretations(normalized, active)
	trends := AnalyzeTrends(normalized)
	actions := Prioritize(snap.careGaps, at, topN)
	score := Score(snap.careGaps, interpretations)

	return &PatientSummary{
		PatientID:       patientID,
		GeneratedAt:     at,
		Score:           score,
		Interpretations: interpretations,
		Trends:          trends,
		PriorityActions: actions,
		Insights:        Aggregate(trends, actions, active, score),
	}, nil
}

// Trends evaluates only the trend portion of the pipeline.
func (s *Service) Trends(ctx context.Context, patientID uuid.UUID) ([]TrendResult, error) {
	observations, _, err := s.observations.ListByPatient(ctx, patientID, snapshotLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading observations: %w", err)
	}
	return AnalyzeTrends(NormalizeAll(observations)), nil
}

// PriorityActions evaluates only the care-gap ranking.
func (s *Service) PriorityActions(ctx context.Context, patientID uuid.UUID, at time.Time, topN int) ([]PriorityAction, error) {
	if at.IsZero() {
		at = s.clock()
	}
	if topN <= 0 {
		topN = s.topActions
	}
	gaps, _, err := s.careGaps.ListByPatient(ctx, patientID, snapshotLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading care gaps: %w", err)
	}
	return Prioritize(gaps, at, topN), nil
}

type snapshot struct {
	conditions   []*record.Condition
	observations []*record.Observation
	careGaps     []*record.CareGap
}

func (s *Service) loadSnapshot(ctx context.Context, patientID uuid.UUID) (*snapshot, error) {
	conditions, _, err := s.conditions.ListByPatient(ctx, patientID, snapshotLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading conditions: %w", err)
	}
	observations, _, err := s.observations.ListByPatient(ctx, patientID, snapshotLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading observations: %w", err)
	}
	careGaps, _, err := s.careGaps.ListByPatient(ctx, patientID, snapshotLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading care gaps: %w", err)
	}
	return &snapshot{
		conditions:   conditions,
		observations: observations,
		careGaps:     careGaps,
	}, nil
}

// latestInterpretations interprets the most recent numeric value per code.
// Historical values feed trends instead; interpreting them here would
// penalize the score for abnormalities the patient has since corrected.
// Undated values lose to any dated one. Output is sorted by code.
func latestInterpretations(observations []ClinicalObservation, activeConditions []string) []Interpretation {
	latest := make(map[string]ClinicalObservation)
	for _, obs := range observations {
		if obs.Code == "" || obs.Value == nil {
			continue
		}
		current, seen := latest[obs.Code]
		if !seen || newerThan(obs, current) {
			latest[obs.Code] = obs
		}
	}

	codes := make([]string, 0, len(latest))
	for code := range latest {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	interpretations := make([]Interpretation, 0, len(codes))
	for _, code := range codes {
		interpretations = append(interpretations, Interpret(code, *latest[code].Value, activeConditions))
	}
	return interpretations
}

func newerThan(a, b ClinicalObservation) bool {
	if a.Timestamp == nil {
		return false
	}
	if b.Timestamp == nil {
		return true
	}
	return a.Timestamp.After(*b.Timestamp)
}
