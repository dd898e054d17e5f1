package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikeodnis/core-service/internal/application"
	"github.com/mikeodnis/core-service/pkg/response"
)

type HealthHandler struct {
	Svc *application.HealthService
}

func NewHealthHandler(svc *application.HealthService) *HealthHandler {
	return &HealthHandler{Svc: svc}
}

// Liveness never touches a dependency.
func (h *HealthHandler) Liveness(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.Svc.Liveness())
}

// Readiness answers 503 when any dependency check is unhealthy.
func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.Svc.Readiness(c.Request.Context())
	status := http.StatusOK
	if !report.Ready() {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}
