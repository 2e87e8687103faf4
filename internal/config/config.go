package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Database drivers understood by the server.
const (
	DriverSurreal = "surreal"
	DriverMemory  = "memory"
)

// Provider exposes configuration values to the rest of the application.
// Handlers and stores depend on this interface rather than the concrete struct,
// which keeps them easy to fake in tests.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetDBDriver() string
	GetDBUrl() string
	GetDBNs() string
	GetDBDb() string
	GetDBUser() string
	GetDBPass() string
	GetUserAPIURL() string
	GetEditorIdleTimeout() time.Duration
	GetEmailProvider() string
	GetEmailSender() string
	GetEmailAPIKey() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr        string `validate:"required"`
	AppBaseURL        string `validate:"required,url"`
	SessionSecret     string `validate:"required,min=16"`
	DBDriver          string `validate:"oneof=surreal memory"`
	DBUrl             string `validate:"required_if=DBDriver surreal"`
	DBNs              string `validate:"required_if=DBDriver surreal"`
	DBDb              string `validate:"required_if=DBDriver surreal"`
	DBUser            string
	DBPass            string
	UserAPIURL        string        `validate:"required,url"`
	EditorIdleTimeout time.Duration `validate:"gt=0"`
	EmailProvider     string        `validate:"oneof=log resend"`
	EmailSender       string
	EmailAPIKey       string `validate:"required_if=EmailProvider resend"`
}

// Load reads configuration from the environment (and a .env file if present)
// and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		ServerAddr:    getenv("SERVER_ADDR", ":8080"),
		AppBaseURL:    getenv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBDriver:      getenv("DB_DRIVER", DriverSurreal),
		DBUrl:         os.Getenv("SURREAL_URL"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
		DBNs:          os.Getenv("SURREAL_NS"),
		DBDb:          os.Getenv("SURREAL_DB"),
		EmailProvider: getenv("EMAIL_PROVIDER", "log"),
		EmailSender:   getenv("EMAIL_SENDER", "Profiledash <onboarding@resend.dev>"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
	}
	cfg.UserAPIURL = getenv("USER_API_URL", cfg.AppBaseURL)

	idle := getenv("EDITOR_IDLE_TIMEOUT", "30m")
	d, err := time.ParseDuration(idle)
	if err != nil {
		return nil, fmt.Errorf("invalid EDITOR_IDLE_TIMEOUT %q: %w", idle, err)
	}
	cfg.EditorIdleTimeout = d

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New loads configuration and exits the process if it is invalid.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetServerAddr() string               { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string               { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string            { return c.SessionSecret }
func (c *Config) GetDBDriver() string                 { return c.DBDriver }
func (c *Config) GetDBUrl() string                    { return c.DBUrl }
func (c *Config) GetDBNs() string                     { return c.DBNs }
func (c *Config) GetDBDb() string                     { return c.DBDb }
func (c *Config) GetDBUser() string                   { return c.DBUser }
func (c *Config) GetDBPass() string                   { return c.DBPass }
func (c *Config) GetUserAPIURL() string               { return c.UserAPIURL }
func (c *Config) GetEditorIdleTimeout() time.Duration { return c.EditorIdleTimeout }
func (c *Config) GetEmailProvider() string            { return c.EmailProvider }
func (c *Config) GetEmailSender() string              { return c.EmailSender }
func (c *Config) GetEmailAPIKey() string              { return c.EmailAPIKey }
