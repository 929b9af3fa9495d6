package httpserver

import (
	"errors"
	"log"
	"net/http"
	"time"

	"tailorshop/internal/domain"
	customersvc "tailorshop/internal/service/customer"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	records RecordService
	logger  *log.Logger
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "tailorshop API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) listCustomers(c *gin.Context) {
	customers, err := h.records.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *handlers) getCustomer(c *gin.Context) {
	customer, err := h.records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *handlers) createCustomer(c *gin.Context) {
	var in customersvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.records.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateCustomer(c *gin.Context) {
	var in customersvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := h.records.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteCustomer(c *gin.Context) {
	if err := h.records.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

func (h *handlers) nextOrderNumber(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"order_number": h.records.NextOrderNumber(c.Request.Context())})
}

// fail maps a service error to an HTTP response; fallback is the generic 500
// message for the endpoint.
func (h *handlers) fail(c *gin.Context, err error, fallback string) {
	var vErr *customersvc.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number already exists"})
	case errors.Is(err, domain.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer does not exist"})
	default:
		h.logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
