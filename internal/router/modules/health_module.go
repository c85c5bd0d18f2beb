package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthModule exposes a liveness/readiness probe that checks the shared
// Postgres and Redis connections.
type HealthModule struct {
	Pool *pgxpool.Pool
	RDB  *redis.Client
}

func NewHealthModule(pool *pgxpool.Pool, rdb *redis.Client) *HealthModule {
	return &HealthModule{Pool: pool, RDB: rdb}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"status": "ok"}
		code := http.StatusOK
		if m.Pool != nil {
			if err := m.Pool.Ping(ctx); err != nil {
				status["postgres"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if m.RDB != nil {
			if err := m.RDB.Ping(ctx).Err(); err != nil {
				status["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		c.JSON(code, status)
	})
}
