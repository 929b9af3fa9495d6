package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	OrderNumber string
	Name        string
	Phone       string
	Email       string
	Address     string
}

// shirtBlob is the sample shirt measurement stored with each seed customer.
const shirtBlob = `{"length":"28","chest":"40","waist":"34","hip":"38","shoulder":"18","sleeve":"24","neck":"16","cuff":"9"}`

// Apply inserts sample customers for manual testing. It is idempotent: a
// customer whose order number already exists is skipped.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	customers := []customerSeed{
		{
			OrderNumber: "ORD-001",
			Name:        "John Doe",
			Phone:       "+1234567890",
			Email:       "john.doe@email.com",
			Address:     "123 Main Street, City, State",
		},
		{
			OrderNumber: "ORD-002",
			Name:        "Jane Smith",
			Phone:       "+1234567891",
			Email:       "jane.smith@email.com",
			Address:     "456 Oak Avenue, City, State",
		},
		{
			OrderNumber: "ORD-003",
			Name:        "Mike Johnson",
			Phone:       "+1234567892",
			Email:       "mike.johnson@email.com",
			Address:     "789 Pine Road, City, State",
		},
	}

	for _, c := range customers {
		if err := insertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.OrderNumber, err)
		}
	}
	return nil
}

func insertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	var id *string
	err := pool.QueryRow(ctx, `
INSERT INTO customers (order_number, name, phone, email, address)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (order_number) DO NOTHING
RETURNING id::text
`, c.OrderNumber, c.Name, c.Phone, c.Email, c.Address).Scan(&id)
	if err != nil {
		// No row returned means the customer already exists; keep it as is.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	_, err = pool.Exec(ctx, `
INSERT INTO measurements (customer_id, type, style, measurements, printed)
VALUES ($1, 'shirt', 'arrow', $2, FALSE)
`, *id, shirtBlob)
	return err
}
