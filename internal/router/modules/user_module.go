package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/prowtech/complet-users/internal/interface/http"
	"github.com/prowtech/complet-users/internal/interface/middleware"
)

// UserModule mounts the user CRUD surface:
//
//	GET    /users/list
//	POST   /users/create
//	PUT    /users/edit/:email
//	DELETE /users/delete/:email
type UserModule struct {
	Handler *handlers.UserHandler
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIP()) // 30 req/min per IP

	users := rg.Group("/users")
	users.GET("/list", m.Handler.List)
	users.POST("/create", createLimiter, m.Handler.Create)
	users.PUT("/edit/:email", m.Handler.Update)
	users.DELETE("/delete/:email", m.Handler.Delete)
}
