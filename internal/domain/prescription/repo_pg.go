package prescription

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

const rxCols = `id, patient_id, visit_id, medication, dosage, frequency, duration,
	route, instructions, prescribed_by, status, start_date, end_date, created_at, updated_at`

func scanRx(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.VisitID, &p.Medication, &p.Dosage, &p.Frequency,
		&p.Duration, &p.Route, &p.Instructions, &p.PrescribedBy, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription (id, patient_id, visit_id, medication, dosage,
			frequency, duration, route, instructions, prescribed_by, status, start_date, end_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.PatientID, p.VisitID, p.Medication, p.Dosage, p.Frequency,
		p.Duration, p.Route, p.Instructions, p.PrescribedBy, p.Status, p.StartDate, p.EndDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanRx(r.conn(ctx).QueryRow(ctx, `SELECT `+rxCols+` FROM prescription WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescription SET medication=$2, dosage=$3, frequency=$4, duration=$5,
			route=$6, instructions=$7, status=$8, start_date=$9, end_date=$10, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Medication, p.Dosage, p.Frequency, p.Duration,
		p.Route, p.Instructions, p.Status, p.StartDate, p.EndDate)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescription WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM prescription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+rxCols+` FROM prescription WHERE patient_id = $1
		 ORDER BY start_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scanRx(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+rxCols+` FROM prescription
		 WHERE patient_id = $1 AND status = 'active' AND (end_date IS NULL OR end_date >= NOW())
		 ORDER BY start_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scanRx(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
