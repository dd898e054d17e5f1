package router

import (
	"github.com/mikeodnis/core-service/internal/application"
	"github.com/mikeodnis/core-service/internal/container"
	repouser "github.com/mikeodnis/core-service/internal/domain/repository"
	pginfra "github.com/mikeodnis/core-service/internal/infrastructure/postgres"
	handlers "github.com/mikeodnis/core-service/internal/interface/http"
	"github.com/mikeodnis/core-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *application.Service
	Handler *handlers.UserHandler
}

func buildUserDeps(c *container.Container) UserModuleDeps {
	repo := pginfra.NewUserRepository(c.PGPool)
	service := application.NewService(repo, c.Publisher(), c.Logger)
	handler := handlers.NewUserHandler(service, c.Logger)

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

func buildHealthHandler(c *container.Container) *handlers.HealthHandler {
	svc := application.NewHealthService(container.LivenessService, c.Config.ReadinessTimeout, c.Logger, c.ReadinessChecks()...)
	return handlers.NewHealthHandler(svc)
}

// InitModules wires every feature module from the container into the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	userDeps := buildUserDeps(c)
	r.Add(modules.NewHealthModule(buildHealthHandler(c)))
	r.Add(modules.NewUserModule(userDeps.Handler, c.JWT))
	r.Add(modules.NewDocsModule(handlers.NewDocsHandler(c.Docs), c.Config.APIPrefix))
}
