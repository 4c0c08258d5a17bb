package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/validator"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB открывает изолированную in-memory sqlite БД с полной схемой
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Одно соединение, иначе каждый коннектор пула видит свою пустую БД
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SocialAccount{},
		&models.JobSeekerProfile{},
		&models.EmployerProfile{},
	))
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.SessionTTLDays = 30
	cfg.Auth.PasswordMinLength = 8
	cfg.Auth.VerificationCodeTTLMin = 15
	cfg.Auth.ResetCodeTTLMin = 15
	cfg.OAuth.Google.ClientID = "test-google-client"
	cfg.OAuth.Google.ClientSecret = "test-google-secret"
	cfg.OAuth.Google.RedirectURL = "http://localhost:8080/api/v1/auth/social/google/callback"
	return cfg
}

type testServer struct {
	db       *gorm.DB
	cfg      *config.Config
	router   http.Handler
	services *services.ServiceContainer
}

// newTestServer собирает полный HTTP-стек поверх sqlite:
// DBMiddleware, хендлеры и маршруты как в internal/app
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := newTestConfig()
	// AuthMiddleware читает секрет через config.GetConfig()
	config.AppConfig = cfg

	container := services.NewServiceContainer(cfg, nil)
	base := NewBaseHandler(validator.New())

	router := gin.New()
	router.Use(middleware.DBMiddleware(db))

	api := router.Group("/api/v1")
	NewAuthHandler(base, cfg, container.AuthService, container.UserService).RegisterRoutes(api)
	NewSocialHandler(base, cfg, container.Providers, container.SocialService).RegisterRoutes(api)
	NewUserHandler(base, container.UserService).RegisterRoutes(api)

	return &testServer{
		db:       db,
		cfg:      cfg,
		router:   router,
		services: container,
	}
}

// do выполняет JSON-запрос к тестовому серверу
func (ts *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// createVerifiedUser создает активный подтвержденный аккаунт напрямую в БД
func (ts *testServer) createVerifiedUser(t *testing.T, emailAddr string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse", 0)
	require.NoError(t, err)

	user := &models.User{
		Email:        strings.ToLower(emailAddr),
		PasswordHash: hash,
		FirstName:    "Test",
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, ts.db.Create(user).Error)
	return user
}

// bearerFor выпускает сессионный токен и возвращает заголовок Authorization
func (ts *testServer) bearerFor(t *testing.T, user *models.User) map[string]string {
	t.Helper()

	token, err := auth.GenerateSessionToken(user.ID, string(user.Role), ts.cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

// sessionCookie ищет cookie сессии в ответе
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == contextkeys.SessionCookieName {
			return c
		}
	}
	return nil
}
