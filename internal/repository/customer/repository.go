package customer

import (
	"context"

	"tailorshop/internal/domain"
)

// UpdateInput carries the scalar fields an update may touch. Nil pointers
// leave the stored value unchanged.
type UpdateInput struct {
	OrderNumber *string
	Name        *string
	Phone       *string
	Email       *string
	Address     *string
}

// Repository persists and fetches customers with their measurements.
type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer, measurements []domain.Measurement) (*domain.Customer, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	ListOrderNumbers(ctx context.Context) ([]string, error)
}
