package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, business hours, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Auth     AuthConfig
	Razorpay RazorpayConfig
	SMTP     SMTPConfig
	Schedule ScheduleConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5*60*60 + 30*60
}

type AuthConfig struct {
	// Tokens are issued by the external auth provider; this service only verifies them.
	Secret string `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
}

type RazorpayConfig struct {
	// Both empty is a supported (degraded) configuration: payment endpoints
	// respond with a gateway-unavailable error instead of crashing at boot.
	KeyID     string `envconfig:"RAZORPAY_KEY_ID" default:""`
	KeySecret string `envconfig:"RAZORPAY_KEY_SECRET" default:""`
}

type SMTPConfig struct {
	Host       string `envconfig:"SMTP_HOST" default:""`
	Port       int    `envconfig:"SMTP_PORT" default:"587"`
	User       string `envconfig:"SMTP_USER" default:""`
	Password   string `envconfig:"SMTP_PASS" default:""`
	From       string `envconfig:"SMTP_FROM" default:""`
	AdminEmail string `envconfig:"ADMIN_EMAIL" default:""`
}

type ScheduleConfig struct {
	// Ordered working-hour labels; slot times outside this set are never offered.
	BusinessHours []string `envconfig:"BUSINESS_HOURS" default:"10:00 AM,11:00 AM,12:00 PM,01:00 PM,02:00 PM,03:00 PM,04:00 PM,05:00 PM"`
	// time.Weekday values (0 = Sunday).
	ExcludedWeekdays []int `envconfig:"EXCLUDED_WEEKDAYS" default:"0"`
	CandidateDates   int   `envconfig:"CANDIDATE_DATES" default:"7"`
}

type SweepConfig struct {
	Enabled    bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	Interval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"15m"`
	PendingTTL time.Duration `envconfig:"SWEEP_PENDING_TTL" default:"30m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *RazorpayConfig) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

func (c *SMTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		Auth: AuthConfig{
			Secret: "test-secret",
		},
		Schedule: ScheduleConfig{
			BusinessHours: []string{
				"10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM",
				"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
			},
			ExcludedWeekdays: []int{0},
			CandidateDates:   7,
		},
		Sweep: SweepConfig{
			Enabled:    false,
			Interval:   15 * time.Minute,
			PendingTTL: 30 * time.Minute,
		},
	}
}
