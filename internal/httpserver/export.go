package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"tailorshop/internal/export"
	"github.com/gin-gonic/gin"
)

func (h *handlers) exportCSV(c *gin.Context) {
	customers, err := h.records.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to export customers")
		return
	}

	filename := fmt.Sprintf("customers-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, customers); err != nil {
		h.logger.Printf("write csv export: %v", err)
	}
}

func (h *handlers) exportReport(c *gin.Context) {
	customers, err := h.records.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to export customers")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteReport(c.Writer, customers, time.Now().UTC()); err != nil {
		h.logger.Printf("write report export: %v", err)
	}
}
