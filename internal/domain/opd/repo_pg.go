package opd

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const visitCols = `id, patient_id, doctor_id, shard_day, visited_at, status, discount, note, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO opd_visit (id, patient_id, doctor_id, shard_day, visited_at, status, discount, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		v.ID, v.PatientID, v.DoctorID, billing.Day(v.ShardDay), v.VisitedAt, v.Status, v.Discount.Value(), v.Note,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Visit, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+visitCols+` FROM opd_visit WHERE id = $1`, id)
	return scanVisit(row)
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE opd_visit SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE opd_visit SET discount = $2, updated_at = NOW() WHERE id = $1`, id, discount)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM opd_visit WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+visitCols+` FROM opd_visit WHERE patient_id = $1
		ORDER BY visited_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanVisits(rows)
	return items, total, err
}

func (r *repoPG) ListByDay(ctx context.Context, day time.Time) ([]*Visit, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+visitCols+` FROM opd_visit WHERE shard_day = $1 ORDER BY visited_at`,
		billing.Day(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVisits(rows)
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	var discount float64
	if err := row.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.ShardDay, &v.VisitedAt, &v.Status, &discount, &v.Note, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Discount = billing.Amount(discount)
	return &v, nil
}

func scanVisits(rows pgx.Rows) ([]*Visit, error) {
	var items []*Visit
	for rows.Next() {
		var v Visit
		var discount float64
		if err := rows.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.ShardDay, &v.VisitedAt, &v.Status, &discount, &v.Note, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		v.Discount = billing.Amount(discount)
		items = append(items, &v)
	}
	return items, rows.Err()
}
