package contact

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Insert(ctx context.Context, m *Message) error {
	const query = `
	INSERT INTO contact_messages (id, name, email, subject, message)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, status, is_read, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, m.Name, m.Email, m.Subject, m.Message).
		Scan(&m.ID, &m.Status, &m.IsRead, &m.CreatedAt)
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Message, error) {
	const query = `
	SELECT id, name, email, subject, message, status, is_read, created_at
	FROM contact_messages
	ORDER BY created_at DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message,
			&m.Status, &m.IsRead, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context) (Stats, error) {
	const query = `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'Pending'),
		COUNT(*) FILTER (WHERE NOT is_read)
	FROM contact_messages
	`
	var stats Stats
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query).
		Scan(&stats.Total, &stats.Pending, &stats.Unread); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
