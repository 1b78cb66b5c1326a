package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubTokens struct{}

func (stubTokens) GenerateToken(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func setupHandler() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, stubTokens{})
	authHandler := NewAuthHandler(authService)

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))

	return router, mockRepo
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := postJSON(router, "/auth/register", map[string]string{
			"email":     "api_test@kanso.app",
			"password":  "PasswordSuperSegreta1!",
			"full_name": "Api Tester",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response userResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "api_test@kanso.app", response.Email)
		assert.Equal(t, "Api Tester", response.DisplayName)
		assert.NotEmpty(t, response.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Fail: Should return 400 on invalid payload", func(t *testing.T) {
		router, _ := setupHandler()

		w := postJSON(router, "/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Should return 409 if email exists", func(t *testing.T) {
		router, mockRepo := setupHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		w := postJSON(router, "/auth/register", map[string]string{
			"email":    "duplicate@kanso.app",
			"password": "ValidPassword123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
	})

	t.Run("Fail: Should return 500 on unexpected repository error", func(t *testing.T) {
		router, mockRepo := setupHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db exploded"))

		w := postJSON(router, "/auth/register", map[string]string{
			"email":    "boom@kanso.app",
			"password": "ValidPassword123",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db exploded")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := domain.NewUser("user-1", "login@kanso.app", "")
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("ValidPassword123"))

	t.Run("Success: Should return a token", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "login@kanso.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{
			"email":    "Login@kanso.app",
			"password": "ValidPassword123",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var response loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "token-for-user-1", response.Token)
		assert.Equal(t, "login", response.User.DisplayName)
	})

	t.Run("Fail: Wrong password and unknown email look the same", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "login@kanso.app").Return(user, nil)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@kanso.app").Return(nil, domain.ErrUserNotFound)

		wrong := postJSON(router, "/auth/login", map[string]string{"email": "login@kanso.app", "password": "nope-nope-nope"})
		ghost := postJSON(router, "/auth/login", map[string]string{"email": "ghost@kanso.app", "password": "ValidPassword123"})

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, ghost.Code)
		assert.Equal(t, wrong.Body.String(), ghost.Body.String())
	})
}
