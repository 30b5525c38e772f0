package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogfeed/internal/config"
	handlers "blogfeed/internal/handler"
	"blogfeed/internal/models"
	"blogfeed/internal/service"
)

func newAuthHandlers(auth *MockAuthService) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService: auth,
		Cfg:         &config.Config{},
		Validate:    validator.New(),
	}
}

func TestRegisterHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("Register", mock.Anything, service.RegisterRequest{
			Email:    "alice@example.com",
			Name:     "Alice",
			Password: "password123",
		}).Return(&models.User{UserID: "user-1", Email: "alice@example.com", Name: "Alice"}, nil)

		body := bytes.NewBufferString(`{"email":"alice@example.com","name":"Alice","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)

		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "user-1", response["userId"])
		mockAuth.AssertExpectations(t)
	})

	t.Run("bad email", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		body := bytes.NewBufferString(`{"email":"not-an-email","name":"Alice","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)

		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockAuth.AssertNotCalled(t, "Register")
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("Register", mock.Anything, mock.Anything).
			Return(nil, service.Invalid("Email already registered."))

		body := bytes.NewBufferString(`{"email":"alice@example.com","name":"Alice","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)

		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("tokens issued", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("Login", mock.Anything, "alice@example.com", "password123").
			Return(&models.User{UserID: "user-1"}, "access-token", "refresh-token", nil)

		body := bytes.NewBufferString(`{"email":"alice@example.com","password":"password123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)

		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "access-token", response["accessToken"])
		assert.Equal(t, "refresh-token", response["refreshToken"])
		assert.Equal(t, "user-1", response["userId"])
	})

	t.Run("wrong credentials", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("Login", mock.Anything, "alice@example.com", "nope").
			Return(nil, "", "", service.Unauthorized("Wrong email or password."))

		body := bytes.NewBufferString(`{"email":"alice@example.com","password":"nope"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)

		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("rotated", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("RefreshTokens", mock.Anything, "refresh-token").
			Return(&models.User{UserID: "user-1"}, "new-access", "new-refresh", nil)

		body := bytes.NewBufferString(`{"refreshToken":"refresh-token"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", body)

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "new-access", response["accessToken"])
		assert.Equal(t, "new-refresh", response["refreshToken"])
	})

	t.Run("stale token", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		handler := newAuthHandlers(mockAuth)

		mockAuth.On("RefreshTokens", mock.Anything, "stale").
			Return(nil, "", "", service.Unauthorized("Invalid refresh token."))

		body := bytes.NewBufferString(`{"refreshToken":"stale"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", body)

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
