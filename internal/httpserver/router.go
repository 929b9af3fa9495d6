package httpserver

import (
	"context"
	"log"

	"tailorshop/internal/domain"
	customersvc "tailorshop/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RecordService is the record-management surface the HTTP layer exposes.
type RecordService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, in customersvc.CreateInput) (*domain.Customer, error)
	Update(ctx context.Context, id string, in customersvc.UpdateInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	NextOrderNumber(ctx context.Context) string
	Measurements(ctx context.Context, customerID string) ([]domain.Measurement, error)
	AddMeasurement(ctx context.Context, customerID string, in customersvc.MeasurementInput) (*domain.Measurement, error)
}

// Deps carries everything the routes need.
type Deps struct {
	Records RecordService
}

// buildRouter wires routes for the API. The route list mirrors the surface
// the shop's UI already talks to.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	h := &handlers{records: deps.Records, logger: logger}

	api := router.Group("/api")
	api.GET("/health", healthHandler)

	api.GET("/customers", h.listCustomers)
	api.POST("/customers", h.createCustomer)
	api.GET("/customers/:id", h.getCustomer)
	api.PUT("/customers/:id", h.updateCustomer)
	api.DELETE("/customers/:id", h.deleteCustomer)

	api.GET("/measurements/:customerId", h.listMeasurements)
	api.POST("/measurements", h.addMeasurement)

	api.GET("/order-numbers/next", h.nextOrderNumber)

	api.GET("/export/csv", h.exportCSV)
	api.GET("/export/report", h.exportReport)

	return router
}
