package ledger

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

const serviceCols = `id, visit_type, visit_id, shard_day, service_name, service_type, amount, doctor_id, doctor_name, created_at`

func (r *repoPG) AppendService(ctx context.Context, sc *ServiceCharge) error {
	sc.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_service (
			id, visit_type, visit_id, shard_day, service_name, service_type, amount, doctor_id, doctor_name
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		sc.ID, sc.VisitType, sc.VisitID, billing.Day(sc.ShardDay), sc.ServiceName, sc.ServiceType,
		sc.Amount.Value(), sc.DoctorID, sc.DoctorName,
	)
	return err
}

const paymentCols = `id, visit_type, visit_id, shard_day, amount, payment_type, kind, paid_on, created_at`

func (r *repoPG) AppendPayment(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO visit_payment (
			id, visit_type, visit_id, shard_day, amount, payment_type, kind, paid_on
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.VisitType, p.VisitID, billing.Day(p.ShardDay), p.Amount.Value(), p.PaymentType, p.Kind, p.PaidOn,
	)
	return err
}

func (r *repoPG) ListServices(ctx context.Context, visitType billing.VisitSource, visitID uuid.UUID, shardDay time.Time) ([]*ServiceCharge, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+serviceCols+` FROM visit_service
		WHERE visit_type = $1 AND visit_id = $2 AND shard_day = $3
		ORDER BY created_at`,
		visitType, visitID, billing.Day(shardDay))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *repoPG) ListServicesByDay(ctx context.Context, visitType billing.VisitSource, day time.Time) ([]*ServiceCharge, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+serviceCols+` FROM visit_service
		WHERE visit_type = $1 AND shard_day = $2
		ORDER BY created_at`,
		visitType, billing.Day(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *repoPG) ListPayments(ctx context.Context, visitType billing.VisitSource, visitID uuid.UUID, shardDay time.Time) ([]*Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+paymentCols+` FROM visit_payment
		WHERE visit_type = $1 AND visit_id = $2 AND shard_day = $3
		ORDER BY created_at`,
		visitType, visitID, billing.Day(shardDay))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *repoPG) ListPaymentsByDay(ctx context.Context, visitType billing.VisitSource, day time.Time) ([]*Payment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+paymentCols+` FROM visit_payment
		WHERE visit_type = $1 AND shard_day = $2
		ORDER BY created_at`,
		visitType, billing.Day(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func scanServices(rows pgx.Rows) ([]*ServiceCharge, error) {
	var items []*ServiceCharge
	for rows.Next() {
		var sc ServiceCharge
		var amount float64
		if err := rows.Scan(
			&sc.ID, &sc.VisitType, &sc.VisitID, &sc.ShardDay, &sc.ServiceName, &sc.ServiceType,
			&amount, &sc.DoctorID, &sc.DoctorName, &sc.CreatedAt,
		); err != nil {
			return nil, err
		}
		sc.Amount = billing.Amount(amount)
		items = append(items, &sc)
	}
	return items, rows.Err()
}

func scanPayments(rows pgx.Rows) ([]*Payment, error) {
	var items []*Payment
	for rows.Next() {
		var p Payment
		var amount float64
		if err := rows.Scan(
			&p.ID, &p.VisitType, &p.VisitID, &p.ShardDay, &amount, &p.PaymentType, &p.Kind, &p.PaidOn, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Amount = billing.Amount(amount)
		items = append(items, &p)
	}
	return items, rows.Err()
}
