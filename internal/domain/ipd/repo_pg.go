package ipd

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

const admissionCols = `id, patient_id, doctor_id, ward, bed_number, shard_day, admitted_at, discharged_at, status, discount, note, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, a *Admission) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO ipd_admission (id, patient_id, doctor_id, ward, bed_number, shard_day, admitted_at, status, discount, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.Ward, a.BedNumber, billing.Day(a.ShardDay), a.AdmittedAt, a.Status, a.Discount.Value(), a.Note,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+admissionCols+` FROM ipd_admission WHERE id = $1`, id)
	return scanAdmission(row)
}

func (r *repoPG) Discharge(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ipd_admission SET status = $2, discharged_at = $3, updated_at = NOW() WHERE id = $1`,
		id, status, at)
	return err
}

func (r *repoPG) SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ipd_admission SET discount = $2, updated_at = NOW() WHERE id = $1`, id, discount)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ipd_admission WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+admissionCols+` FROM ipd_admission WHERE patient_id = $1
		ORDER BY admitted_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanAdmissions(rows)
	return items, total, err
}

func (r *repoPG) ListByDay(ctx context.Context, day time.Time) ([]*Admission, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+admissionCols+` FROM ipd_admission WHERE shard_day = $1 ORDER BY admitted_at`,
		billing.Day(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAdmissions(rows)
}

func scanAdmission(row pgx.Row) (*Admission, error) {
	var a Admission
	var discount float64
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Ward, &a.BedNumber, &a.ShardDay, &a.AdmittedAt, &a.DischargedAt, &a.Status, &discount, &a.Note, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Discount = billing.Amount(discount)
	return &a, nil
}

func scanAdmissions(rows pgx.Rows) ([]*Admission, error) {
	var items []*Admission
	for rows.Next() {
		var a Admission
		var discount float64
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Ward, &a.BedNumber, &a.ShardDay, &a.AdmittedAt, &a.DischargedAt, &a.Status, &discount, &a.Note, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Discount = billing.Amount(discount)
		items = append(items, &a)
	}
	return items, rows.Err()
}
