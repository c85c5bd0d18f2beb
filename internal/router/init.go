package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	userapp "github.com/prowtech/complet-users/internal/application"
	pginfra "github.com/prowtech/complet-users/internal/infrastructure/postgres"
	"github.com/prowtech/complet-users/internal/infrastructure/rediscache"
	handlers "github.com/prowtech/complet-users/internal/interface/http"
	"github.com/prowtech/complet-users/internal/router/modules"
	"github.com/prowtech/complet-users/pkg/helpers"
	"github.com/prowtech/complet-users/pkg/monitoring"
)

// Deps carries the shared, long-lived collaborators. The service never owns
// these connections; they are constructed once in main and passed down.
type Deps struct {
	Logger    *logrus.Logger
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	Reporter  monitoring.Reporter
}

// InitModules wires repositories, services and handlers explicitly and
// registers every feature module with the router registry.
func InitModules(reg *Registry, d Deps) {
	repo := pginfra.NewUserRepository(d.Pool)

	var cache userapp.Cache
	if d.Redis != nil {
		cache = rediscache.New(d.Redis)
	}
	var notifier userapp.Notifier
	if d.Publisher != nil {
		notifier = d.Publisher
	}

	svc := userapp.NewService(repo, cache, notifier, d.Logger, d.Reporter)
	h := handlers.NewUserHandler(svc, d.Logger)

	reg.Add(modules.NewUserModule(h, d.Redis))
	reg.Add(modules.NewHealthModule(d.Pool, d.Redis))
}
