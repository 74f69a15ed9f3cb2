package casualty

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

const caseCols = `id, patient_id, doctor_id, triage_level, mode_of_arrival, mlc, incident_note, shard_day, arrived_at, status, discount, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, cs *Case) error {
	cs.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO casualty_case (id, patient_id, doctor_id, triage_level, mode_of_arrival, mlc, incident_note, shard_day, arrived_at, status, discount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at`,
		cs.ID, cs.PatientID, cs.DoctorID, cs.TriageLevel, cs.ModeOfArrival, cs.MLC, cs.IncidentNote,
		billing.Day(cs.ShardDay), cs.ArrivedAt, cs.Status, cs.Discount.Value(),
	).Scan(&cs.CreatedAt, &cs.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+caseCols+` FROM casualty_case WHERE id = $1`, id)
	return scanCase(row)
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE casualty_case SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *repoPG) SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE casualty_case SET discount = $2, updated_at = NOW() WHERE id = $1`, id, discount)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM casualty_case WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+caseCols+` FROM casualty_case WHERE patient_id = $1
		ORDER BY arrived_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanCases(rows)
	return items, total, err
}

func (r *repoPG) ListByDay(ctx context.Context, day time.Time) ([]*Case, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+caseCols+` FROM casualty_case WHERE shard_day = $1 ORDER BY arrived_at`,
		billing.Day(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func scanCase(row pgx.Row) (*Case, error) {
	var cs Case
	var discount float64
	if err := row.Scan(&cs.ID, &cs.PatientID, &cs.DoctorID, &cs.TriageLevel, &cs.ModeOfArrival, &cs.MLC, &cs.IncidentNote, &cs.ShardDay, &cs.ArrivedAt, &cs.Status, &discount, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
		return nil, err
	}
	cs.Discount = billing.Amount(discount)
	return &cs, nil
}

func scanCases(rows pgx.Rows) ([]*Case, error) {
	var items []*Case
	for rows.Next() {
		var cs Case
		var discount float64
		if err := rows.Scan(&cs.ID, &cs.PatientID, &cs.DoctorID, &cs.TriageLevel, &cs.ModeOfArrival, &cs.MLC, &cs.IncidentNote, &cs.ShardDay, &cs.ArrivedAt, &cs.Status, &discount, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
			return nil, err
		}
		cs.Discount = billing.Amount(discount)
		items = append(items, &cs)
	}
	return items, rows.Err()
}
