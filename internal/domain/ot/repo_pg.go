package ot

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

const noteCols = `id, patient_id, admission_id, surgeon_id, surgeon, anaesthetist, procedure_name, findings, started_at, ended_at, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO ot_note (id, patient_id, admission_id, surgeon_id, surgeon, anaesthetist, procedure_name, findings, started_at, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		n.ID, n.PatientID, n.AdmissionID, n.SurgeonID, n.Surgeon, n.Anaesthetist, n.Procedure, n.Findings, n.StartedAt, n.EndedAt,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+noteCols+` FROM ot_note WHERE id = $1`, id)
	return scanNote(row)
}

func (r *repoPG) Update(ctx context.Context, n *Note) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ot_note SET surgeon=$2, anaesthetist=$3, procedure_name=$4, findings=$5, started_at=$6, ended_at=$7, updated_at=NOW()
		WHERE id = $1`,
		n.ID, n.Surgeon, n.Anaesthetist, n.Procedure, n.Findings, n.StartedAt, n.EndedAt,
	)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ot_note WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+noteCols+` FROM ot_note WHERE patient_id = $1
		ORDER BY started_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanNotes(rows)
	return items, total, err
}

func (r *repoPG) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Note, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM ot_note WHERE started_at >= $1 AND started_at < $2`,
		from, to).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+noteCols+` FROM ot_note
		WHERE started_at >= $1 AND started_at < $2
		ORDER BY started_at DESC LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanNotes(rows)
	return items, total, err
}

func scanNote(row pgx.Row) (*Note, error) {
	var n Note
	if err := row.Scan(&n.ID, &n.PatientID, &n.AdmissionID, &n.SurgeonID, &n.Surgeon, &n.Anaesthetist, &n.Procedure, &n.Findings, &n.StartedAt, &n.EndedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func scanNotes(rows pgx.Rows) ([]*Note, error) {
	var items []*Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.PatientID, &n.AdmissionID, &n.SurgeonID, &n.Surgeon, &n.Anaesthetist, &n.Procedure, &n.Findings, &n.StartedAt, &n.EndedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}
