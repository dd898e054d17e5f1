package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mikeodnis/core-service/pkg/apidoc"
)

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Docs        *apidoc.Builder
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts every module under prefix (e.g. "/v1/core").
func NewRegistry(engine *gin.Engine, prefix string, docs *apidoc.Builder) *Registry {
	api := engine.Group(prefix)
	return &Registry{Engine: engine, API: api, Docs: docs}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		if r.Docs != nil {
			m.Describe(r.Docs)
		}
	}
}
