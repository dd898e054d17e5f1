package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mikeodnis/core-service/pkg/apidoc"
)

// Module describes a feature module that can register its routes on a RouterGroup
// and declare them in the OpenAPI document.
type Module interface {
	Register(rg *gin.RouterGroup)
	Describe(doc *apidoc.Builder)
}
