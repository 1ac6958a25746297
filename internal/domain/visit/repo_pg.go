package visit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const visitCols = `id, patient_id, visit_type, chief_complaint, diagnosis,
	secondary_diagnoses, treatment_plan, medications, notes, follow_up_date,
	visit_date, created_by, created_at, updated_at`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.VisitType, &v.ChiefComplaint, &v.Diagnosis,
		&v.SecondaryDiagnoses, &v.TreatmentPlan, &v.Medications, &v.Notes, &v.FollowUpDate,
		&v.VisitDate, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit (id, patient_id, visit_type, chief_complaint, diagnosis,
			secondary_diagnoses, treatment_plan, medications, notes, follow_up_date,
			visit_date, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		v.ID, v.PatientID, v.VisitType, v.ChiefComplaint, v.Diagnosis,
		v.SecondaryDiagnoses, v.TreatmentPlan, v.Medications, v.Notes, v.FollowUpDate,
		v.VisitDate, v.CreatedBy)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return scanVisit(r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM visit WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM visit WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1
		 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

func (r *repoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*Visit, error) {
	return scanVisit(r.conn(ctx).QueryRow(ctx,
		`SELECT `+visitCols+` FROM visit WHERE patient_id = $1
		 ORDER BY visit_date DESC LIMIT 1`, patientID))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM visit WHERE id = $1`, id)
	return err
}
