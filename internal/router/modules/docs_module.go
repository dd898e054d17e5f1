package modules

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	handlers "github.com/mikeodnis/core-service/internal/interface/http"
	"github.com/mikeodnis/core-service/pkg/apidoc"
)

// DocsModule serves the generated OpenAPI document and swagger-ui.
// GET {prefix}/docs/ redirects to the UI index.
type DocsModule struct {
	Handler *handlers.DocsHandler
	Prefix  string
}

func NewDocsModule(h *handlers.DocsHandler, prefix string) *DocsModule {
	return &DocsModule{Handler: h, Prefix: prefix}
}

func (m *DocsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/openapi.json", m.Handler.OpenAPI)
	rg.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(m.Prefix+"/openapi.json"),
		ginSwagger.DocExpansion("list"),
	))
}

// Describe is a no-op: the docs endpoints are not part of the API surface.
func (m *DocsModule) Describe(*apidoc.Builder) {}
