package immunization

import (
	"context"
	"time"

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

const immCols = `id, patient_id, vaccine, dose_number, lot_number, site, route,
	administered_by, administered_at, next_dose_due, notes, created_at, updated_at`

func scanImm(row pgx.Row) (*Immunization, error) {
	var im Immunization
	err := row.Scan(&im.ID, &im.PatientID, &im.Vaccine, &im.DoseNumber, &im.LotNumber,
		&im.Site, &im.Route, &im.AdministeredBy, &im.AdministeredAt, &im.NextDoseDue,
		&im.Notes, &im.CreatedAt, &im.UpdatedAt)
	return &im, err
}

func (r *repoPG) Create(ctx context.Context, im *Immunization) error {
	im.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO immunization (id, patient_id, vaccine, dose_number, lot_number,
			site, route, administered_by, administered_at, next_dose_due, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		im.ID, im.PatientID, im.Vaccine, im.DoseNumber, im.LotNumber,
		im.Site, im.Route, im.AdministeredBy, im.AdministeredAt, im.NextDoseDue, im.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Immunization, error) {
	return scanImm(r.conn(ctx).QueryRow(ctx, `SELECT `+immCols+` FROM immunization WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, im *Immunization) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE immunization SET vaccine=$2, dose_number=$3, lot_number=$4, site=$5,
			route=$6, administered_by=$7, administered_at=$8, next_dose_due=$9,
			notes=$10, updated_at=NOW()
		WHERE id = $1`,
		im.ID, im.Vaccine, im.DoseNumber, im.LotNumber, im.Site,
		im.Route, im.AdministeredBy, im.AdministeredAt, im.NextDoseDue, im.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM immunization WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM immunization WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+immCols+` FROM immunization WHERE patient_id = $1
		 ORDER BY administered_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Immunization
	for rows.Next() {
		im, err := scanImm(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, im)
	}
	return items, total, nil
}

func (r *repoPG) ListDueBefore(ctx context.Context, patientID uuid.UUID, by time.Time) ([]*Immunization, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+immCols+` FROM immunization
		 WHERE patient_id = $1 AND next_dose_due IS NOT NULL AND next_dose_due <= $2
		 ORDER BY next_dose_due ASC`, patientID, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Immunization
	for rows.Next() {
		im, err := scanImm(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, im)
	}
	return items, nil
}
