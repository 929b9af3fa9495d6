package measurement

import (
	"context"

	"tailorshop/internal/domain"
)

// Repository persists and fetches measurements independently of the owning
// customer's lifecycle.
type Repository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Measurement, error)
	Create(ctx context.Context, m domain.Measurement) (*domain.Measurement, error)
}
