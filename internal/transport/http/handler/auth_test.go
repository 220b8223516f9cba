package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-directory/internal/app"
	"employee-directory/internal/model"
	"employee-directory/internal/repository"
)

const testSecret = "handler-secret"

type fakeUserStore struct {
	users []*model.User
}

func (f *fakeUserStore) Create(user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrDuplicateKey)
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := app.NewAuthService(&fakeUserStore{}, testSecret, time.Hour)
	authHandler := NewAuthHandler(authService)

	router := gin.New()
	auth := router.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegister_Created(t *testing.T) {
	router := newAuthRouter()

	rec := postJSON(router, "/api/auth/register",
		`{"fullName":"Jane Doe","username":"jane","email":"jane@ex.com","password":"s3cretpass"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, `"token"`)
	assert.Contains(t, body, `"jane@ex.com"`)
	assert.NotContains(t, body, "s3cretpass")
	assert.NotContains(t, body, "passwordHash")
}

func TestRegister_MissingFields(t *testing.T) {
	router := newAuthRouter()

	rec := postJSON(router, "/api/auth/register", `{"email":"jane@ex.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Email and password are required"}`, rec.Body.String())
}

func TestRegister_Conflict(t *testing.T) {
	router := newAuthRouter()

	payload := `{"email":"jane@ex.com","password":"s3cretpass"}`
	rec := postJSON(router, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(router, "/api/auth/register", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, rec.Body.String())
}

func TestLogin_OKAndInvalid(t *testing.T) {
	router := newAuthRouter()

	rec := postJSON(router, "/api/auth/register", `{"email":"jane@ex.com","password":"s3cretpass"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(router, "/api/auth/login", `{"identifier":"jane@ex.com","password":"s3cretpass"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)

	rec = postJSON(router, "/api/auth/login", `{"identifier":"jane@ex.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())

	rec = postJSON(router, "/api/auth/login", `{"identifier":"jane@ex.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Identifier and password are required"}`, rec.Body.String())
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	router := newAuthRouter()

	rec := postJSON(router, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, rec.Body.String())
}
