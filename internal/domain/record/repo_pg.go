package record

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Condition Repository ===========

type conditionRepoPG struct{ pool *pgxpool.Pool }

func NewConditionRepoPG(pool *pgxpool.Pool) ConditionRepository { return &conditionRepoPG{pool: pool} }

const conditionCols = `id, patient_id, code, display, clinical_status,
	onset_date, recorded_date, created_at, updated_at`

func (r *conditionRepoPG) scan(row pgx.Row) (*Condition, error) {
	var c Condition
	err := row.Scan(&c.ID, &c.PatientID, &c.Code, &c.Display, &c.ClinicalStatus,
		&c.OnsetDate, &c.RecordedDate, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *conditionRepoPG) Create(ctx context.Context, c *Condition) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO condition (id, patient_id, code, display, clinical_status, onset_date, recorded_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.PatientID, c.Code, c.Display, c.ClinicalStatus, c.OnsetDate, c.RecordedDate)
	return err
}

func (r *conditionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Condition, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+conditionCols+` FROM condition WHERE id = $1`, id))
}

func (r *conditionRepoPG) Update(ctx context.Context, c *Condition) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE condition SET code=$2, display=$3, clinical_status=$4, onset_date=$5,
			recorded_date=$6, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Code, c.Display, c.ClinicalStatus, c.OnsetDate, c.RecordedDate)
	return err
}

func (r *conditionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM condition WHERE id = $1`, id)
	return err
}

func (r *conditionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Condition, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM condition WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+conditionCols+` FROM condition
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Condition
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// =========== Observation Repository ===========

type observationRepoPG struct{ pool *pgxpool.Pool }

func NewObservationRepoPG(pool *pgxpool.Pool) ObservationRepository {
	return &observationRepoPG{pool: pool}
}

const observationCols = `id, patient_id, code, display, value, unit, effective_time,
	reference_low, reference_high, status, created_at, updated_at`

func (r *observationRepoPG) scan(row pgx.Row) (*Observation, error) {
	var o Observation
	err := row.Scan(&o.ID, &o.PatientID, &o.Code, &o.Display, &o.Value, &o.Unit, &o.EffectiveTime,
		&o.ReferenceLow, &o.ReferenceHigh, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *observationRepoPG) Create(ctx context.Context, o *Observation) error {
	o.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO observation (id, patient_id, code, display, value, unit, effective_time,
			reference_low, reference_high, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.PatientID, o.Code, o.Display, o.Value, o.Unit, o.EffectiveTime,
		o.ReferenceLow, o.ReferenceHigh, o.Status)
	return err
}

func (r *observationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Observation, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+observationCols+` FROM observation WHERE id = $1`, id))
}

func (r *observationRepoPG) Update(ctx context.Context, o *Observation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE observation SET code=$2, display=$3, value=$4, unit=$5, effective_time=$6,
			reference_low=$7, reference_high=$8, status=$9, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.Code, o.Display, o.Value, o.Unit, o.EffectiveTime,
		o.ReferenceLow, o.ReferenceHigh, o.Status)
	return err
}

func (r *observationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM observation WHERE id = $1`, id)
	return err
}

func (r *observationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Observation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM observation WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+observationCols+` FROM observation
		WHERE patient_id = $1 ORDER BY effective_time DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Observation
	for rows.Next() {
		o, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, nil
}

// =========== Care Gap Repository ===========

type careGapRepoPG struct{ pool *pgxpool.Pool }

func NewCareGapRepoPG(pool *pgxpool.Pool) CareGapRepository { return &careGapRepoPG{pool: pool} }

const careGapCols = `id, patient_id, title, category, status, priority,
	due_date, last_performed_date, recommended_action, created_at, updated_at`

func (r *careGapRepoPG) scan(row pgx.Row) (*CareGap, error) {
	var g CareGap
	err := row.Scan(&g.ID, &g.PatientID, &g.Title, &g.Category, &g.Status, &g.Priority,
		&g.DueDate, &g.LastPerformedDate, &g.RecommendedAction, &g.CreatedAt, &g.UpdatedAt)
	return &g, err
}

func (r *careGapRepoPG) Create(ctx context.Context, g *CareGap) error {
	g.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO care_gap (id, patient_id, title, category, status, priority,
			due_date, last_performed_date, recommended_action)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		g.ID, g.PatientID, g.Title, g.Category, g.Status, g.Priority,
		g.DueDate, g.LastPerformedDate, g.RecommendedAction)
	return err
}

func (r *careGapRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CareGap, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+careGapCols+` FROM care_gap WHERE id = $1`, id))
}

func (r *careGapRepoPG) Update(ctx context.Context, g *CareGap) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE care_gap SET title=$2, category=$3, status=$4, priority=$5,
			due_date=$6, last_performed_date=$7, recommended_action=$8, updated_at=NOW()
		WHERE id = $1`,
		g.ID, g.Title, g.Category, g.Status, g.Priority,
		g.DueDate, g.LastPerformedDate, g.RecommendedAction)
	return err
}

func (r *careGapRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM care_gap WHERE id = $1`, id)
	return err
}

func (r *careGapRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CareGap, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM care_gap WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+careGapCols+` FROM care_gap
		WHERE patient_id = $1 ORDER BY due_date ASC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CareGap
	for rows.Next() {
		g, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, g)
	}
	return items, total, nil
}

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

const medicationCols = `id, patient_id, name, dosage, frequency, status,
	start_date, end_date, created_at, updated_at`

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medication (id, patient_id, name, dosage, frequency, status, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.ID, m.PatientID, m.Name, m.Dosage, m.Frequency, m.Status, m.StartDate, m.EndDate)
	return err
}

func (r *medicationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	return err
}

func (r *medicationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Medication, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM medication WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+medicationCols+` FROM medication
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.Frequency, &m.Status,
			&m.StartDate, &m.EndDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &m)
	}
	return items, total, nil
}

// =========== Allergy Repository ===========

type allergyRepoPG struct{ pool *pgxpool.Pool }

func NewAllergyRepoPG(pool *pgxpool.Pool) AllergyRepository { return &allergyRepoPG{pool: pool} }

func (r *allergyRepoPG) Create(ctx context.Context, a *Allergy) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO allergy (id, patient_id, substance, reaction, criticality, recorded_date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.Substance, a.Reaction, a.Criticality, a.RecordedDate)
	return err
}

func (r *allergyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM allergy WHERE id = $1`, id)
	return err
}

func (r *allergyRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Allergy, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM allergy WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT id, patient_id, substance, reaction, criticality,
		recorded_date, created_at, updated_at FROM allergy
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Allergy
	for rows.Next() {
		var a Allergy
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Substance, &a.Reaction, &a.Criticality,
			&a.RecordedDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &a)
	}
	return items, total, nil
}

// =========== Immunization Repository ===========

type immunizationRepoPG struct{ pool *pgxpool.Pool }

func NewImmunizationRepoPG(pool *pgxpool.Pool) ImmunizationRepository {
	return &immunizationRepoPG{pool: pool}
}

func (r *immunizationRepoPG) Create(ctx context.Context, im *Immunization) error {
	im.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO immunization (id, patient_id, vaccine_name, dose_number, occurred_date)
		VALUES ($1,$2,$3,$4,$5)`,
		im.ID, im.PatientID, im.VaccineName, im.DoseNumber, im.OccurredDate)
	return err
}

func (r *immunizationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM immunization WHERE id = $1`, id)
	return err
}

func (r *immunizationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM immunization WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT id, patient_id, vaccine_name, dose_number,
		occurred_date, created_at, updated_at FROM immunization
		WHERE patient_id = $1 ORDER BY occurred_date DESC NULLS LAST LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Immunization
	for rows.Next() {
		var im Immunization
		if err := rows.Scan(&im.ID, &im.PatientID, &im.VaccineName, &im.DoseNumber,
			&im.OccurredDate, &im.CreatedAt, &im.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &im)
	}
	return items, total, nil
}
