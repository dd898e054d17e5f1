package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/internal/application"
	pginfra "github.com/mikeodnis/core-service/internal/infrastructure/postgres"
	"github.com/mikeodnis/core-service/pkg/apidoc"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

// LivenessService is the service label reported by the liveness probe.
const LivenessService = "core"

// Container holds the components built once by main and handed to the router.
// Nothing in here is package-global; tests build their own.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	JWT       *helpers.JWTManager
	RabbitPub *helpers.RabbitPublisher
	Docs      *apidoc.Builder
}

func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher) *Container {
	return &Container{
		Config:    cfg,
		Logger:    logger,
		PGPool:    pool,
		JWT:       jwt,
		RabbitPub: pub,
		Docs:      NewDocs(cfg),
	}
}

// NewDocs starts the OpenAPI document; modules add their operations to it.
func NewDocs(cfg *config.Config) *apidoc.Builder {
	return apidoc.New(apidoc.Info{
		Title:       "Core API",
		Description: "Core business logic and shared utilities",
		Version:     "1.0.0",
		ServerURL:   cfg.PublicBaseURL,
		ServerDesc:  "Production",
	},
		apidoc.Tag{Name: "health", Description: "Health check endpoints"},
		apidoc.Tag{Name: "users", Description: "User management endpoints"},
	)
}

// Publisher returns the event sink, or nil when events are disabled.
// The nil check keeps a typed nil pointer out of the interface.
func (c *Container) Publisher() application.EventPublisher {
	if c.RabbitPub == nil {
		return nil
	}
	return c.RabbitPub
}

// ReadinessChecks lists the dependencies probed by /health/ready.
func (c *Container) ReadinessChecks() []application.Check {
	checks := []application.Check{pginfra.NewDatabaseCheck(c.PGPool)}
	if c.RabbitPub != nil {
		checks = append(checks, c.RabbitPub)
	}
	return checks
}
