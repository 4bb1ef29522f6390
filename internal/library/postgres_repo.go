package library

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const recordColumns = `
	id, user_id, google_books_id, title, subtitle, authors, description,
	thumbnail, preview_link, published_date, page_count, categories,
	average_rating, ratings_count, status, rating, review, notes,
	created_at, updated_at`

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

// Insert creates the record and fills in its generated id and timestamps.
// The (user_id, google_books_id) unique constraint is the second line of
// defense against racing saves; a violation surfaces as ErrDuplicate.
func (r *PostgresRepo) Insert(ctx context.Context, rec *Record) error {
	const query = `
		INSERT INTO library_records
			(id, user_id, google_books_id, title, subtitle, authors, description,
			 thumbnail, preview_link, published_date, page_count, categories,
			 average_rating, ratings_count, status, rating, review, notes)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		rec.UserID, rec.GoogleBooksID, rec.Title, rec.Subtitle, rec.Authors,
		rec.Description, rec.Thumbnail, rec.PreviewLink, rec.PublishedDate,
		rec.PageCount, rec.Categories, rec.AverageRating, rec.RatingsCount,
		rec.Status, rec.Rating, rec.Review, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID, statusFilter string) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM library_records WHERE user_id = $1`
	args := []any{userID}
	if statusFilter != "" {
		query += ` AND status = $2`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY created_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetOne(ctx context.Context, id, userID string) (Record, error) {
	query := `SELECT ` + recordColumns + ` FROM library_records WHERE id = $1 AND user_id = $2 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rec, err := scanRecord(r.db.QueryRow(timeoutCtx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// UpdateFields applies only the whitelisted annotation fields in a single
// statement, so concurrent updates serialize on the row and the later
// writer's updated_at wins. An update with no fields still refreshes
// updated_at.
func (r *PostgresRepo) UpdateFields(ctx context.Context, id, userID string, upd Update) (Record, error) {
	sets := []string{}
	args := []any{}
	argn := 1

	if upd.Status != nil {
		sets = append(sets, "status = $"+strconv.Itoa(argn))
		args = append(args, *upd.Status)
		argn++
	}
	if upd.Rating != nil {
		sets = append(sets, "rating = $"+strconv.Itoa(argn))
		args = append(args, *upd.Rating)
		argn++
	}
	if upd.Review != nil {
		sets = append(sets, "review = $"+strconv.Itoa(argn))
		args = append(args, *upd.Review)
		argn++
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = $"+strconv.Itoa(argn))
		args = append(args, *upd.Notes)
		argn++
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id, userID)
	query := fmt.Sprintf(
		`UPDATE library_records SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argn, argn+1, recordColumns,
	)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rec, err := scanRecord(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM library_records WHERE id = $1 AND user_id = $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) CountByStatus(ctx context.Context, userID string) (Stats, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM library_records
		WHERE user_id = $1`

	var stats Stats
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, userID,
		StatusWantToRead, StatusReading, StatusCompleted,
	).Scan(&stats.Total, &stats.WantToRead, &stats.Reading, &stats.Completed)
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.GoogleBooksID, &rec.Title, &rec.Subtitle,
		&rec.Authors, &rec.Description, &rec.Thumbnail, &rec.PreviewLink,
		&rec.PublishedDate, &rec.PageCount, &rec.Categories, &rec.AverageRating,
		&rec.RatingsCount, &rec.Status, &rec.Rating, &rec.Review, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
