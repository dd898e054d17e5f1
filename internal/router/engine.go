package router

import (
	"regexp"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/internal/container"
	"github.com/mikeodnis/core-service/internal/interface/middleware"
)

var localhostOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)

// CORSConfig allows the configured origins plus local development hosts.
func CORSConfig(cfg *config.Config) cors.Config {
	origins := cfg.CORSOrigins()
	allowLocal := cfg.CORSAllowLocalhost
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if slices.Contains(origins, origin) {
				return true
			}
			return allowLocal && localhostOrigin.MatchString(origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// NewEngine builds the gin engine with the global middleware chain and every
// module registered under the configured prefix.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	r.Use(middleware.Recovery(c.Logger))
	r.Use(cors.New(CORSConfig(cfg)))

	reg := NewRegistry(r, cfg.APIPrefix, c.Docs)
	// spans only for routes the API serves
	if cfg.TracingEnabled() {
		reg.Use(otelgin.Middleware(cfg.OtelServiceName))
	}
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
