package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"tailorshop/internal/domain"
	"tailorshop/internal/ordernum"
	custrepo "tailorshop/internal/repository/customer"
	measrepo "tailorshop/internal/repository/measurement"
)

// ValidationError marks a rejected request payload. Handlers map it to a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Service implements the record-management operations over the two
// repositories.
type Service struct {
	customers    custrepo.Repository
	measurements measrepo.Repository
	logger       *log.Logger
}

// New creates a Service.
func New(customers custrepo.Repository, measurements measrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{customers: customers, measurements: measurements, logger: logger}
}

// MeasurementInput mirrors an incoming measurement payload. Measurements is
// the raw dimension object; it is decoded against the garment type.
type MeasurementInput struct {
	Type         string          `json:"type"`
	Style        *string         `json:"style"`
	Measurements json.RawMessage `json:"measurements"`
	Notes        string          `json:"notes"`
	Printed      bool            `json:"printed"`
	CreatedAt    *time.Time      `json:"created_at"`
}

// CreateInput captures a new customer submission with optional embedded
// measurements.
type CreateInput struct {
	OrderNumber  string             `json:"order_number"`
	Name         string             `json:"name"`
	Phone        string             `json:"phone"`
	Email        string             `json:"email"`
	Address      string             `json:"address"`
	Measurements []MeasurementInput `json:"measurements"`
}

// UpdateInput carries the scalar fields an update may change. Empty strings
// are treated as not provided.
type UpdateInput struct {
	OrderNumber string `json:"order_number"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// List returns all customers, newest first, with measurements attached.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// Get returns one customer with its measurements.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// Create validates and persists a customer plus any embedded measurements.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	c := domain.Customer{
		OrderNumber: strings.TrimSpace(in.OrderNumber),
		Name:        strings.TrimSpace(in.Name),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Address:     strings.TrimSpace(in.Address),
	}
	if c.OrderNumber == "" {
		return nil, validationf("order_number is required")
	}
	if c.Name == "" {
		return nil, validationf("name is required")
	}
	if c.Phone == "" {
		return nil, validationf("phone is required")
	}

	measurements := make([]domain.Measurement, 0, len(in.Measurements))
	for _, mi := range in.Measurements {
		m, err := buildMeasurement(mi)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, *m)
	}

	return s.customers.Create(ctx, c, measurements)
}

// Update applies the provided scalar fields to the customer.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Customer, error) {
	repoIn := custrepo.UpdateInput{
		OrderNumber: optional(in.OrderNumber),
		Name:        optional(in.Name),
		Phone:       optional(in.Phone),
		Email:       optional(in.Email),
		Address:     optional(in.Address),
	}
	if repoIn.OrderNumber == nil && repoIn.Name == nil && repoIn.Phone == nil && repoIn.Email == nil && repoIn.Address == nil {
		return nil, validationf("no fields to update")
	}
	return s.customers.Update(ctx, id, repoIn)
}

// Delete removes the customer; the store cascades to its measurements. A
// missing id is treated as success.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// NextOrderNumber computes the next gap-filling order number from the current
// records. When the store is unreachable it falls back to ORD-001 rather than
// failing; the unique constraint catches a reused number at insert time.
func (s *Service) NextOrderNumber(ctx context.Context) string {
	nums, err := s.customers.ListOrderNumbers(ctx)
	if err != nil {
		s.logger.Printf("order number lookup failed, falling back to %s: %v", ordernum.Format(1), err)
		return ordernum.Format(1)
	}
	return ordernum.Next(nums)
}

// Measurements lists a customer's measurements.
func (s *Service) Measurements(ctx context.Context, customerID string) ([]domain.Measurement, error) {
	return s.measurements.ListByCustomer(ctx, customerID)
}

// AddMeasurement validates and persists a standalone measurement for an
// existing customer.
func (s *Service) AddMeasurement(ctx context.Context, customerID string, in MeasurementInput) (*domain.Measurement, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, validationf("customer_id is required")
	}
	m, err := buildMeasurement(in)
	if err != nil {
		return nil, err
	}
	m.CustomerID = customerID
	return s.measurements.Create(ctx, *m)
}

func buildMeasurement(in MeasurementInput) (*domain.Measurement, error) {
	t := domain.GarmentType(strings.TrimSpace(in.Type))
	if !t.Valid() {
		return nil, validationf("type must be one of shirt, pant, trouser")
	}

	var style *domain.ShirtStyle
	if in.Style != nil && *in.Style != "" {
		s := domain.ShirtStyle(*in.Style)
		if s != domain.StyleArrow && s != domain.StyleSlack {
			return nil, validationf("style must be arrow or slack")
		}
		style = &s
	}

	dims, err := domain.DecodeDimensions(t, in.Measurements)
	if err != nil {
		return nil, validationf("invalid measurements for type %s: %v", t, err)
	}

	return &domain.Measurement{
		Type:       t,
		Style:      style,
		Dimensions: dims,
		Notes:      in.Notes,
		Printed:    in.Printed,
		CreatedAt:  in.CreatedAt,
	}, nil
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
