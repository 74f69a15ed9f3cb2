package mortality

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

const reportCols = `id, patient_id, doctor_id, died_at, cause, place, brought_dead, note, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO mortality_report (id, patient_id, doctor_id, died_at, cause, place, brought_dead, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		rep.ID, rep.PatientID, rep.DoctorID, rep.DiedAt, rep.Cause, rep.Place, rep.BroughtDead, rep.Note,
	).Scan(&rep.CreatedAt, &rep.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+reportCols+` FROM mortality_report WHERE id = $1`, id)
	var rep Report
	if err := row.Scan(&rep.ID, &rep.PatientID, &rep.DoctorID, &rep.DiedAt, &rep.Cause, &rep.Place, &rep.BroughtDead, &rep.Note, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE mortality_report SET died_at=$2, cause=$3, place=$4, brought_dead=$5, note=$6, updated_at=NOW()
		WHERE id = $1`,
		rep.ID, rep.DiedAt, rep.Cause, rep.Place, rep.BroughtDead, rep.Note,
	)
	return err
}

func (r *repoPG) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Report, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM mortality_report WHERE died_at >= $1 AND died_at < $2`,
		from, to).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+reportCols+` FROM mortality_report
		WHERE died_at >= $1 AND died_at < $2
		ORDER BY died_at DESC LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.PatientID, &rep.DoctorID, &rep.DiedAt, &rep.Cause, &rep.Place, &rep.BroughtDead, &rep.Note, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &rep)
	}
	return items, total, rows.Err()
}
