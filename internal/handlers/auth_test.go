package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyventures/tasks-api/internal/models"
	"github.com/skyventures/tasks-api/internal/repository"
	"github.com/skyventures/tasks-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, []byte("test-secret"), time.Hour)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/user/register", handler.Register)
	r.POST("/api/user/login", handler.Login)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) post(t *testing.T, url string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func authErrorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var response map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &response))
	msg, _ := response["error"]["message"].(string)
	return msg
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/user/register", map[string]string{
		"username": "maria",
		"email":    "Maria@Example.COM",
		"password": "Password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "maria", response["username"])
	require.Equal(t, "maria@example.com", response["email"])
	require.NotEmpty(t, response["_id"])
	require.NotEmpty(t, response["token"])
	require.NotContains(t, response, "password")

	// Password is stored hashed, never in the clear.
	var user models.User
	require.NoError(t, env.db.Where("username = ?", "maria").First(&user).Error)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "Password123", user.PasswordHash)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupAuthTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{
			"username too short",
			map[string]string{"username": "m", "email": "m@example.com", "password": "Password123"},
			"Your username needs to be at least 2 characters long",
		},
		{
			"invalid email",
			map[string]string{"username": "maria", "email": "not-an-email", "password": "Password123"},
			"The email address you entered is not valid",
		},
		{
			"password missing uppercase",
			map[string]string{"username": "maria", "email": "m@example.com", "password": "alllower1"},
			"Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, and one digit",
		},
		{
			"password too short",
			map[string]string{"username": "maria", "email": "m@example.com", "password": "Pw1"},
			"Password must be at least 8 characters long and contain at least one lowercase letter, one uppercase letter, and one digit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.post(t, "/api/user/register", tc.payload)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, tc.message, authErrorMessage(t, w.Body.Bytes()))
		})
	}
}

func TestAuthHandler_Register_Duplicates(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "Password123",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/user/register", map[string]string{
		"username": "maria",
		"email":    "other@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "This username is already in use", authErrorMessage(t, w.Body.Bytes()))

	w = env.post(t, "/api/user/register", map[string]string{
		"username": "other",
		"email":    "maria@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "This email address is already in use", authErrorMessage(t, w.Body.Bytes()))
}

func TestAuthHandler_Register_ConflictReportedBeforeEmailFormat(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "Password123",
	})
	require.NoError(t, err)

	// A taken username wins over a malformed email address.
	w := env.post(t, "/api/user/register", map[string]string{
		"username": "maria",
		"email":    "not-an-email",
		"password": "Password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "This username is already in use", authErrorMessage(t, w.Body.Bytes()))
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	registered, _, err := env.authService.Register(services.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "Password123",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/user/login", map[string]string{
		"email":    "maria@example.com",
		"password": "Password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, registered.ID.String(), response["_id"])
	require.NotEmpty(t, response["token"])
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "Password123",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/user/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "No account found with this email address", authErrorMessage(t, w.Body.Bytes()))

	w = env.post(t, "/api/user/login", map[string]string{
		"email":    "maria@example.com",
		"password": "WrongPassword1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Incorrect password", authErrorMessage(t, w.Body.Bytes()))
}
