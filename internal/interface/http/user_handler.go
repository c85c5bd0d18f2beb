package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/prowtech/complet-users/internal/application"
	"github.com/prowtech/complet-users/internal/domain/entity"
	"github.com/prowtech/complet-users/pkg/response"
	"github.com/prowtech/complet-users/pkg/validation"
)

// UserService is the application surface the HTTP layer depends on.
type UserService interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, in userapp.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, email string, age int) (*entity.User, error)
	Delete(ctx context.Context, email string) (*entity.User, error)
}

type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Age      int    `json:"age" binding:"required,gte=18"`
	Password string `json:"password" binding:"required,min=6"`
}

type updateUserRequest struct {
	Age int `json:"age" binding:"required,gte=18"`
}

// List responds with the full user set (cached or fresh).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create registers a new user. 409 when the email is already taken.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateUserInput{
		Email:    req.Email,
		Age:      req.Age,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update changes the age of the user addressed by email.
func (h *UserHandler) Update(c *gin.Context) {
	email := c.Param("email")
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), email, req.Age)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete removes the user addressed by email and returns its last state.
func (h *UserHandler) Delete(c *gin.Context) {
	email := c.Param("email")

	u, err := h.Svc.Delete(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, userapp.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, u)
}

var _ UserService = (*userapp.Service)(nil)
