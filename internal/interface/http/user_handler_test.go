package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/prowtech/complet-users/internal/application"
	"github.com/prowtech/complet-users/internal/domain/entity"
	"github.com/prowtech/complet-users/pkg/validation"
)

// ---- mock service ----

type mockUserService struct {
	listFn   func(ctx context.Context) ([]entity.User, error)
	createFn func(ctx context.Context, in userapp.CreateUserInput) (*entity.User, error)
	updateFn func(ctx context.Context, email string, age int) (*entity.User, error)
	deleteFn func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserService) List(ctx context.Context) ([]entity.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserService) Create(ctx context.Context, in userapp.CreateUserInput) (*entity.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, in)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserService) Update(ctx context.Context, email string, age int) (*entity.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, email, age)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserService) Delete(ctx context.Context, email string) (*entity.User, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTestRouter(svc UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	r := gin.New()
	h := NewUserHandler(svc, nil)
	users := r.Group("/users")
	users.GET("/list", h.List)
	users.POST("/create", h.Create)
	users.PUT("/edit/:email", h.Update)
	users.DELETE("/delete/:email", h.Delete)
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var testUser = &entity.User{
	ID: "usr-001", Email: "a@x.com", Age: 25, Password: "secret1",
	CreatedAt: time.Now(), UpdatedAt: time.Now(),
}

// ---- tests ----

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(context.Context, userapp.CreateUserInput) (*entity.User, error)
		expectedStatus int
	}{
		{
			name: "success - creates new user",
			body: map[string]interface{}{"email": "a@x.com", "age": 25, "password": "secret1"},
			createFn: func(_ context.Context, in userapp.CreateUserInput) (*entity.User, error) {
				return testUser, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "conflict - email already exists",
			body: map[string]interface{}{"email": "a@x.com", "age": 25, "password": "secret1"},
			createFn: func(_ context.Context, _ userapp.CreateUserInput) (*entity.User, error) {
				return nil, userapp.ErrEmailTaken
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - missing fields",
			body:           map[string]interface{}{"email": "a@x.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid email",
			body:           map[string]interface{}{"email": "not-an-email", "age": 25, "password": "secret1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - under age",
			body:           map[string]interface{}{"email": "a@x.com", "age": 17, "password": "secret1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - short password",
			body:           map[string]interface{}{"email": "a@x.com", "age": 25, "password": "abc"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal - storage failure",
			body: map[string]interface{}{"email": "a@x.com", "age": 25, "password": "secret1"},
			createFn: func(_ context.Context, _ userapp.CreateUserInput) (*entity.User, error) {
				return nil, fmt.Errorf("create user: connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{createFn: tt.createFn})
			w := doRequest(router, http.MethodPost, "/users/create", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestCreateHandler_ResponseBody(t *testing.T) {
	router := newTestRouter(&mockUserService{
		createFn: func(_ context.Context, in userapp.CreateUserInput) (*entity.User, error) {
			u := *testUser
			u.Email = in.Email
			u.Age = in.Age
			return &u, nil
		},
	})
	w := doRequest(router, http.MethodPost, "/users/create",
		map[string]interface{}{"email": "a@x.com", "age": 25, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var got entity.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, 25, got.Age)
	assert.Equal(t, "usr-001", got.ID)
}

func TestListHandler(t *testing.T) {
	t.Run("success - returns array", func(t *testing.T) {
		router := newTestRouter(&mockUserService{
			listFn: func(_ context.Context) ([]entity.User, error) {
				return []entity.User{*testUser}, nil
			},
		})
		w := doRequest(router, http.MethodGet, "/users/list", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got []entity.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "a@x.com", got[0].Email)
	})

	t.Run("success - empty set is an empty array", func(t *testing.T) {
		router := newTestRouter(&mockUserService{
			listFn: func(_ context.Context) ([]entity.User, error) {
				return []entity.User{}, nil
			},
		})
		w := doRequest(router, http.MethodGet, "/users/list", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("internal - storage failure", func(t *testing.T) {
		router := newTestRouter(&mockUserService{
			listFn: func(_ context.Context) ([]entity.User, error) {
				return nil, fmt.Errorf("list users: connection refused")
			},
		})
		w := doRequest(router, http.MethodGet, "/users/list", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		updateFn       func(context.Context, string, int) (*entity.User, error)
		expectedStatus int
	}{
		{
			name: "success - updates age",
			url:  "/users/edit/a@x.com",
			body: map[string]interface{}{"age": 30},
			updateFn: func(_ context.Context, email string, age int) (*entity.User, error) {
				u := *testUser
				u.Age = age
				return &u, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - unknown email",
			url:  "/users/edit/missing@x.com",
			body: map[string]interface{}{"age": 30},
			updateFn: func(_ context.Context, _ string, _ int) (*entity.User, error) {
				return nil, userapp.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad request - under age",
			url:            "/users/edit/a@x.com",
			body:           map[string]interface{}{"age": 12},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing age",
			url:            "/users/edit/a@x.com",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{updateFn: tt.updateFn})
			w := doRequest(router, http.MethodPut, tt.url, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestUpdateHandler_PassesPathEmail(t *testing.T) {
	var gotEmail string
	var gotAge int
	router := newTestRouter(&mockUserService{
		updateFn: func(_ context.Context, email string, age int) (*entity.User, error) {
			gotEmail, gotAge = email, age
			return testUser, nil
		},
	})
	w := doRequest(router, http.MethodPut, "/users/edit/a@x.com", map[string]interface{}{"age": 30})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, 30, gotAge)
}

func TestDeleteHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		deleteFn       func(context.Context, string) (*entity.User, error)
		expectedStatus int
	}{
		{
			name: "success - returns last state",
			url:  "/users/delete/a@x.com",
			deleteFn: func(_ context.Context, _ string) (*entity.User, error) {
				return testUser, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - unknown email",
			url:  "/users/delete/missing@x.com",
			deleteFn: func(_ context.Context, _ string) (*entity.User, error) {
				return nil, userapp.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUserService{deleteFn: tt.deleteFn})
			w := doRequest(router, http.MethodDelete, tt.url, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
		})
	}
}
