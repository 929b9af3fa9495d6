package measurement

import (
	"context"
	"errors"
	"io"
	"log"

	"tailorshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const columns = `id::text, customer_id::text, type, style, measurements, COALESCE(notes, ''), printed, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// ListByCustomer returns the customer's measurements. An unknown customer id
// yields an empty list, not an error; the caller can't tell a deleted
// customer from one that never had measurements, which matches the cascade
// semantics.
func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Measurement, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+columns+`
FROM measurements
WHERE customer_id = $1
ORDER BY created_at NULLS LAST, id
`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Measurement, 0)
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			r.logger.Printf("measurement repo: scan customer=%s err=%v", customerID, err)
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(mapError(err), domain.ErrInvalidReference) {
			// Malformed id cannot reference any customer.
			return []domain.Measurement{}, nil
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Create(ctx context.Context, m domain.Measurement) (*domain.Measurement, error) {
	blob, err := m.Dimensions.Encode()
	if err != nil {
		return nil, err
	}
	saved, err := scanMeasurement(r.pool.QueryRow(ctx, `
INSERT INTO measurements (customer_id, type, style, measurements, notes, printed, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
RETURNING `+columns+`
`, m.CustomerID, m.Type, m.Style, blob, m.Notes, m.Printed, m.CreatedAt))
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func scanMeasurement(row pgx.Row) (*domain.Measurement, error) {
	var m domain.Measurement
	var style *string
	var blob string
	if err := row.Scan(
		&m.ID,
		&m.CustomerID,
		&m.Type,
		&style,
		&blob,
		&m.Notes,
		&m.Printed,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	if style != nil {
		s := domain.ShirtStyle(*style)
		m.Style = &s
	}
	dims, err := domain.DecodeDimensions(m.Type, []byte(blob))
	if err != nil {
		return nil, err
	}
	m.Dimensions = dims
	return &m, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrInvalidReference
		case "22P02":
			return domain.ErrInvalidReference
		}
	}
	return err
}
