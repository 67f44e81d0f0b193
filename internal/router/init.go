package router

import (
	userapp "github.com/minbase/account-service/internal/application"
	"github.com/minbase/account-service/internal/container"
	"github.com/minbase/account-service/internal/infrastructure/redisstore"
	handlers "github.com/minbase/account-service/internal/interface/http"
	"github.com/minbase/account-service/internal/router/modules"
)

// InitModules wires the application modules from the container and registers
// them with the router registry. Called once during startup.
func InitModules(r *Registry, c *container.Container) {
	repo := redisstore.NewUserRepository(c.Redis)

	service := userapp.NewService(
		repo,
		c.JWT,
		c.GCS,
		c.Cfg.GCSBucket,
		c.Redis,
		c.Logger,
		c.RabbitPub,
		c.ES,
		c.Cfg.ESUsersIndex,
	)

	handler := handlers.NewUserHandler(service, c.Logger)

	r.Add(modules.NewUserModule(handler, c.JWT))
}
