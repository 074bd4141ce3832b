package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `
	book_id, title, COALESCE(authors, ''), COALESCE(description, ''),
	COALESCE(edition, ''), COALESCE(format, ''), COALESCE(pages, 0),
	COALESCE(rating, 0), COALESCE(rating_count, 0), COALESCE(review_count, 0),
	COALESCE(genres, ''), COALESCE(image_url, '')`

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

// withConn runs fn on a pooled connection. The connection goes back to the
// pool on every return path, so a listing holds one for the count and then
// one for the page, never both.
func (r *PostgresRepo) withConn(ctx context.Context, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	conn, err := r.db.Acquire(timeoutCtx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(timeoutCtx, conn)
}

func (r *PostgresRepo) CountByPrefix(ctx context.Context, prefix string) (int, error) {
	const query = `SELECT COUNT(*) FROM book2018 WHERE title LIKE $1 ESCAPE '\'`

	var count int
	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, LikePrefix(prefix)).Scan(&count)
	})
	return count, err
}

func (r *PostgresRepo) ListByPrefix(ctx context.Context, prefix string, limit, offset int) ([]Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM book2018
		WHERE title LIKE $1 ESCAPE '\'
		ORDER BY title ASC
		LIMIT $2 OFFSET $3`

	var out []Book
	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, LikePrefix(prefix), limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var b Book
			if err := scanBook(rows, &b); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM book2018
		WHERE book_id = $1
		LIMIT 1`

	var b Book
	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return scanBook(conn.QueryRow(ctx, query, id), &b)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Authors, &b.Description,
		&b.Edition, &b.Format, &b.Pages,
		&b.Rating, &b.RatingCount, &b.ReviewCount,
		&b.Genres, &b.ImageURL,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePrefix turns a user supplied prefix into a LIKE pattern that matches
// titles starting with it literally.
func LikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
