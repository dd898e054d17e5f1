package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/mikeodnis/core-service/internal/interface/http"
	"github.com/mikeodnis/core-service/pkg/apidoc"
)

// HealthModule serves the unauthenticated probes.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Liveness)
	rg.GET("/health/ready", m.Handler.Readiness)
}

func (m *HealthModule) Describe(doc *apidoc.Builder) {
	live := apidoc.Operation("health", "Liveness probe", "Reports that the process is up. Touches no dependency.")
	live.AddResponse(http.StatusOK, apidoc.JSONResponse("Service is alive", livenessSchema()))
	doc.Add(http.MethodGet, "/health", live)

	ready := apidoc.Operation("health", "Readiness probe", "Probes every dependency and reports each check.")
	ready.AddResponse(http.StatusOK, apidoc.JSONResponse("All dependencies healthy", readinessSchema()))
	ready.AddResponse(http.StatusServiceUnavailable, apidoc.JSONResponse("At least one dependency unhealthy", readinessSchema()))
	doc.Add(http.MethodGet, "/health/ready", ready)
}
