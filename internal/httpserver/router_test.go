package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tailorshop/internal/domain"
	customersvc "tailorshop/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type stubRecords struct {
	customers    []domain.Customer
	customer     *domain.Customer
	measurements []domain.Measurement
	measurement  *domain.Measurement
	next         string
	err          error

	deletedID string
}

func (s *stubRecords) List(context.Context) ([]domain.Customer, error) {
	return s.customers, s.err
}

func (s *stubRecords) Get(context.Context, string) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubRecords) Create(_ context.Context, in customersvc.CreateInput) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := domain.Customer{
		ID:           "c-1",
		OrderNumber:  in.OrderNumber,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		Measurements: []domain.Measurement{},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	return &c, nil
}

func (s *stubRecords) Update(context.Context, string, customersvc.UpdateInput) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubRecords) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubRecords) NextOrderNumber(context.Context) string {
	return s.next
}

func (s *stubRecords) Measurements(context.Context, string) ([]domain.Measurement, error) {
	return s.measurements, s.err
}

func (s *stubRecords) AddMeasurement(_ context.Context, customerID string, in customersvc.MeasurementInput) (*domain.Measurement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.measurement, nil
}

func newTestRouter(records RecordService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, Deps{Records: records})
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubRecords{})
	rec := doRequest(router, http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "OK" {
		t.Fatalf("expected status OK, got %q", body["status"])
	}
	if body["timestamp"] == "" {
		t.Fatal("expected timestamp")
	}
}

func TestListCustomers(t *testing.T) {
	records := &stubRecords{customers: []domain.Customer{
		{ID: "c-1", OrderNumber: "ORD-001", Name: "A", Phone: "1", Measurements: []domain.Measurement{}},
	}}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/customers", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 || got[0].OrderNumber != "ORD-001" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestListCustomers_StoreUnavailable(t *testing.T) {
	records := &stubRecords{err: errors.New("connection refused")}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/customers", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to fetch customers") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	records := &stubRecords{err: domain.ErrNotFound}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/customers/missing", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateCustomer(t *testing.T) {
	rec := doRequest(newTestRouter(&stubRecords{}), http.MethodPost, "/api/customers",
		`{"order_number":"ORD-005","name":"A","phone":"1"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID == "" || got.OrderNumber != "ORD-005" {
		t.Fatalf("unexpected customer: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created_at")
	}
	if len(got.Measurements) != 0 {
		t.Fatalf("expected no measurements, got %d", len(got.Measurements))
	}
}

func TestCreateCustomer_DuplicateOrderNumber(t *testing.T) {
	records := &stubRecords{err: domain.ErrAlreadyExists}
	rec := doRequest(newTestRouter(records), http.MethodPost, "/api/customers",
		`{"order_number":"ORD-001","name":"A","phone":"1"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Order number already exists") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestCreateCustomer_InvalidBody(t *testing.T) {
	rec := doRequest(newTestRouter(&stubRecords{}), http.MethodPost, "/api/customers", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteCustomer(t *testing.T) {
	records := &stubRecords{}
	rec := doRequest(newTestRouter(records), http.MethodDelete, "/api/customers/c-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if records.deletedID != "c-1" {
		t.Fatalf("expected delete of c-1, got %q", records.deletedID)
	}
	if !strings.Contains(rec.Body.String(), "Customer deleted successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddMeasurement(t *testing.T) {
	style := domain.StyleArrow
	records := &stubRecords{measurement: &domain.Measurement{
		ID:         "m-1",
		CustomerID: "c-1",
		Type:       domain.GarmentShirt,
		Style:      &style,
		Dimensions: domain.Dimensions{Shirt: &domain.ShirtDimensions{Chest: "40", Waist: "34"}},
	}}
	rec := doRequest(newTestRouter(records), http.MethodPost, "/api/measurements",
		`{"customer_id":"c-1","type":"shirt","style":"arrow","measurements":{"chest":"40","waist":"34"},"notes":""}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Type         string            `json:"type"`
		Style        string            `json:"style"`
		Measurements map[string]string `json:"measurements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Type != "shirt" || got.Style != "arrow" {
		t.Fatalf("unexpected measurement: %+v", got)
	}
	if got.Measurements["chest"] != "40" || got.Measurements["waist"] != "34" {
		t.Fatalf("dimensions lost on the wire: %+v", got.Measurements)
	}
}

func TestAddMeasurement_UnknownCustomer(t *testing.T) {
	records := &stubRecords{err: domain.ErrInvalidReference}
	rec := doRequest(newTestRouter(records), http.MethodPost, "/api/measurements",
		`{"customer_id":"nope","type":"shirt","measurements":{}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestNextOrderNumber(t *testing.T) {
	records := &stubRecords{next: "ORD-003"}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/order-numbers/next", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ORD-003") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestExportCSV(t *testing.T) {
	records := &stubRecords{customers: []domain.Customer{
		{OrderNumber: "ORD-001", Name: "A", Phone: "1", CreatedAt: time.Now()},
	}}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/export/csv", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
	if !strings.Contains(rec.Body.String(), `"ORD-001","A"`) {
		t.Fatalf("unexpected csv body: %s", rec.Body.String())
	}
}

func TestExportReport(t *testing.T) {
	records := &stubRecords{customers: []domain.Customer{
		{OrderNumber: "ORD-001", Name: "A", Phone: "1", CreatedAt: time.Now()},
	}}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/export/report", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "ORD-001") {
		t.Fatalf("report missing customer: %s", rec.Body.String())
	}
}

func TestListMeasurements(t *testing.T) {
	records := &stubRecords{measurements: []domain.Measurement{
		{ID: "m-1", CustomerID: "c-1", Type: domain.GarmentPant,
			Dimensions: domain.Dimensions{Pant: &domain.PantDimensions{Waist: "34"}}},
	}}
	rec := doRequest(newTestRouter(records), http.MethodGet, "/api/measurements/c-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(got))
	}
}
