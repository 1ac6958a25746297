package lab

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

type orderRepoPG struct{ pool *pgxpool.Pool }

func NewOrderRepoPG(pool *pgxpool.Pool) OrderRepository {
	return &orderRepoPG{pool: pool}
}

func (r *orderRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const orderCols = `id, patient_id, visit_id, test_name, test_code, priority, status,
	ordered_by, ordered_at, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.PatientID, &o.VisitID, &o.TestName, &o.TestCode, &o.Priority,
		&o.Status, &o.OrderedBy, &o.OrderedAt, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *orderRepoPG) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_order (id, patient_id, visit_id, test_name, test_code,
			priority, status, ordered_by, ordered_at, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.PatientID, o.VisitID, o.TestName, o.TestCode,
		o.Priority, o.Status, o.OrderedBy, o.OrderedAt, o.Notes)
	return err
}

func (r *orderRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return scanOrder(r.conn(ctx).QueryRow(ctx, `SELECT `+orderCols+` FROM lab_order WHERE id = $1`, id))
}

func (r *orderRepoPG) Update(ctx context.Context, o *Order) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE lab_order SET test_name=$2, test_code=$3, priority=$4, status=$5,
			notes=$6, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.TestName, o.TestCode, o.Priority, o.Status, o.Notes)
	return err
}

func (r *orderRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM lab_order WHERE id = $1`, id)
	return err
}

func (r *orderRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM lab_order WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+orderCols+` FROM lab_order WHERE patient_id = $1
		 ORDER BY ordered_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, nil
}

type resultRepoPG struct{ pool *pgxpool.Pool }

func NewResultRepoPG(pool *pgxpool.Pool) ResultRepository {
	return &resultRepoPG{pool: pool}
}

func (r *resultRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const resultCols = `id, order_id, patient_id, test_name, value, unit,
	reference_range, abnormal, result_date, notes, created_at`

func scanResult(row pgx.Row) (*Result, error) {
	var res Result
	err := row.Scan(&res.ID, &res.OrderID, &res.PatientID, &res.TestName, &res.Value, &res.Unit,
		&res.ReferenceRange, &res.Abnormal, &res.ResultDate, &res.Notes, &res.CreatedAt)
	return &res, err
}

func (r *resultRepoPG) Create(ctx context.Context, res *Result) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_result (id, order_id, patient_id, test_name, value, unit,
			reference_range, abnormal, result_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		res.ID, res.OrderID, res.PatientID, res.TestName, res.Value, res.Unit,
		res.ReferenceRange, res.Abnormal, res.ResultDate, res.Notes)
	return err
}

func (r *resultRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Result, error) {
	return scanResult(r.conn(ctx).QueryRow(ctx, `SELECT `+resultCols+` FROM lab_result WHERE id = $1`, id))
}

func (r *resultRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Result, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM lab_result WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM lab_result WHERE patient_id = $1
		 ORDER BY result_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, res)
	}
	return items, total, nil
}

func (r *resultRepoPG) ListRecentByPatient(ctx context.Context, patientID uuid.UUID, since time.Time, limit int) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM lab_result
		 WHERE patient_id = $1 AND result_date >= $2
		 ORDER BY result_date DESC LIMIT $3`, patientID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}
