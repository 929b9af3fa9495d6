package httpserver

import (
	"net/http"

	customersvc "tailorshop/internal/service/customer"
	"github.com/gin-gonic/gin"
)

// addMeasurementRequest is the standalone measurement submission.
type addMeasurementRequest struct {
	CustomerID string `json:"customer_id"`
	customersvc.MeasurementInput
}

func (h *handlers) listMeasurements(c *gin.Context) {
	measurements, err := h.records.Measurements(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		h.fail(c, err, "Failed to fetch measurements")
		return
	}
	c.JSON(http.StatusOK, measurements)
}

func (h *handlers) addMeasurement(c *gin.Context) {
	var req addMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.records.AddMeasurement(c.Request.Context(), req.CustomerID, req.MeasurementInput)
	if err != nil {
		h.fail(c, err, "Failed to add measurements")
		return
	}
	c.JSON(http.StatusCreated, created)
}
