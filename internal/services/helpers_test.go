package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB открывает изолированную in-memory sqlite БД с полной схемой
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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
	return cfg
}

// fakeEmailProvider собирает отправленные письма; безопасен для goroutine
type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []email.Email
}

func (f *fakeEmailProvider) Send(msg *email.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *msg)
	return nil
}

func (f *fakeEmailProvider) SendVerification(to, name, code string) error {
	return f.Send(&email.Email{To: []string{to}, Subject: "verification", Body: code})
}

func (f *fakeEmailProvider) SendPasswordReset(to, name, code string) error {
	return f.Send(&email.Email{To: []string{to}, Subject: "password_reset", Body: code})
}

func (f *fakeEmailProvider) SendWelcome(to, name string) error {
	return f.Send(&email.Email{To: []string{to}, Subject: "welcome"})
}

func (f *fakeEmailProvider) Validate() error { return nil }
func (f *fakeEmailProvider) Close() error    { return nil }

type testEnv struct {
	db            *gorm.DB
	cfg           *config.Config
	authService   AuthService
	socialService SocialService
	userService   UserService
	emails        *fakeEmailProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	cfg := newTestConfig()
	emails := &fakeEmailProvider{}

	userRepo := repositories.NewUserRepository()
	socialRepo := repositories.NewSocialAccountRepository()
	profileRepo := repositories.NewProfileRepository()

	authService := NewAuthService(cfg, userRepo, profileRepo, emails)

	return &testEnv{
		db:            db,
		cfg:           cfg,
		authService:   authService,
		socialService: NewSocialService(userRepo, socialRepo, profileRepo, authService),
		userService:   NewUserService(cfg, userRepo, profileRepo, authService),
		emails:        emails,
	}
}

// mustFindUserByEmail читает запись пользователя напрямую из БД
func mustFindUserByEmail(t *testing.T, db *gorm.DB, emailAddr string) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("LOWER(email) = LOWER(?)", emailAddr).First(&user).Error)
	return &user
}
