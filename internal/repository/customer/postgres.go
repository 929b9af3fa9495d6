package customer

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

const customerColumns = `id::text, order_number, name, phone, COALESCE(email, ''), COALESCE(address, ''), created_at, updated_at`

const measurementColumns = `id::text, customer_id::text, type, style, measurements, COALESCE(notes, ''), printed, created_at`

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+customerColumns+`
FROM customers
ORDER BY created_at DESC, id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	index := make(map[string]int)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.logger.Printf("customer repo: scan list row: %v", err)
			return nil, err
		}
		index[c.ID] = len(customers)
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mrows, err := r.pool.Query(ctx, `
SELECT `+measurementColumns+`
FROM measurements
ORDER BY created_at NULLS LAST, id
`)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()

	for mrows.Next() {
		m, err := scanMeasurement(mrows)
		if err != nil {
			r.logger.Printf("customer repo: scan measurement row: %v", err)
			return nil, err
		}
		if i, ok := index[m.CustomerID]; ok {
			customers[i].Measurements = append(customers[i].Measurements, *m)
		}
	}
	return customers, mrows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `
SELECT `+customerColumns+`
FROM customers
WHERE id = $1
`, id))
	if err != nil {
		return nil, mapError(err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+measurementColumns+`
FROM measurements
WHERE customer_id = $1
ORDER BY created_at NULLS LAST, id
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			r.logger.Printf("customer repo: scan measurement id=%s err=%v", id, err)
			return nil, err
		}
		c.Measurements = append(c.Measurements, *m)
	}
	return c, rows.Err()
}

// Create inserts the customer and its embedded measurements in a single
// transaction, so a failed measurement insert leaves no orphaned customer.
func (r *postgresRepo) Create(ctx context.Context, c domain.Customer, measurements []domain.Measurement) (*domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := scanCustomer(tx.QueryRow(ctx, `
INSERT INTO customers (order_number, name, phone, email, address)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
RETURNING `+customerColumns+`
`, c.OrderNumber, c.Name, c.Phone, c.Email, c.Address))
	if err != nil {
		return nil, mapError(err)
	}

	for _, m := range measurements {
		blob, err := m.Dimensions.Encode()
		if err != nil {
			return nil, err
		}
		saved, err := scanMeasurement(tx.QueryRow(ctx, `
INSERT INTO measurements (customer_id, type, style, measurements, notes, printed, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
RETURNING `+measurementColumns+`
`, created.ID, m.Type, m.Style, blob, m.Notes, m.Printed, m.CreatedAt))
		if err != nil {
			return nil, mapError(err)
		}
		created.Measurements = append(created.Measurements, *saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `
UPDATE customers
SET order_number = COALESCE($2, order_number),
    name = COALESCE($3, name),
    phone = COALESCE($4, phone),
    email = COALESCE($5, email),
    address = COALESCE($6, address),
    updated_at = now()
WHERE id = $1
RETURNING `+customerColumns+`
`, id, in.OrderNumber, in.Name, in.Phone, in.Email, in.Address))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// Delete removes the customer row; measurements go with it via the cascade.
// A missing id is a no-op.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(mapError(err), domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (r *postgresRepo) ListOrderNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_number FROM customers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nums []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, rows.Err()
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(
		&c.ID,
		&c.OrderNumber,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Measurements = []domain.Measurement{}
	return &c, nil
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

// mapError translates pg failures into domain sentinels: unique violations,
// foreign key violations, and malformed uuid input (which can only mean the
// row does not exist).
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
			return domain.ErrNotFound
		}
	}
	return err
}
