package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret         string `yaml:"secret"`
		SessionTTLDays int    `yaml:"session_ttl_days"`
	} `yaml:"jwt"`

	Auth struct {
		// Единый минимум длины пароля для всех точек входа
		PasswordMinLength      int `yaml:"password_min_length"`
		VerificationCodeTTLMin int `yaml:"verification_code_ttl_min"`
		ResetCodeTTLMin        int `yaml:"reset_code_ttl_min"`
	} `yaml:"auth"`

	OAuth struct {
		Google   OAuthProviderConfig `yaml:"google"`
		LinkedIn OAuthProviderConfig `yaml:"linkedin"`
		Facebook OAuthProviderConfig `yaml:"facebook"`
	} `yaml:"oauth"`

	Frontend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"frontend"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml либо, если задан
// DATABASE_URL, из переменных окружения (режим теста/контейнера)
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@jobboard.local"
	cfg.Email.TemplatesDir = os.Getenv("TEMPLATES_DIR")

	cfg.OAuth.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.OAuth.Google.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.OAuth.Google.RedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")
	cfg.OAuth.LinkedIn.ClientID = os.Getenv("LINKEDIN_CLIENT_ID")
	cfg.OAuth.LinkedIn.ClientSecret = os.Getenv("LINKEDIN_CLIENT_SECRET")
	cfg.OAuth.LinkedIn.RedirectURL = os.Getenv("LINKEDIN_REDIRECT_URL")
	cfg.OAuth.Facebook.ClientID = os.Getenv("FACEBOOK_CLIENT_ID")
	cfg.OAuth.Facebook.ClientSecret = os.Getenv("FACEBOOK_CLIENT_SECRET")
	cfg.OAuth.Facebook.RedirectURL = os.Getenv("FACEBOOK_REDIRECT_URL")

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.SessionTTLDays == 0 {
		cfg.JWT.SessionTTLDays = 30
	}
	if cfg.Auth.PasswordMinLength == 0 {
		cfg.Auth.PasswordMinLength = 8
	}
	if cfg.Auth.VerificationCodeTTLMin == 0 {
		cfg.Auth.VerificationCodeTTLMin = 15
	}
	if cfg.Auth.ResetCodeTTLMin == 0 {
		cfg.Auth.ResetCodeTTLMin = 15
	}
	if cfg.Frontend.BaseURL == "" {
		cfg.Frontend.BaseURL = "http://localhost:3000"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
