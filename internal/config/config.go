package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	AppPort  string
	AppURL   string
	LogLevel string

	// Database
	DBDriver          string
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUsername        string
	DBPassword        string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	SQLitePath        string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Session and JWT
	SessionSecret   string
	SessionExpire   time.Duration
	JWTSecret       string
	JWTAccessExpire time.Duration

	// OTP
	OTPTTL       time.Duration
	OTPRateLimit string
	OTPQueue     bool

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Worker
	WorkerConcurrency int
}

var defaults = map[string]any{
	"APP_NAME":  "BELUT.IN",
	"APP_ENV":   "development",
	"APP_PORT":  "8080",
	"APP_URL":   "http://localhost:8080",
	"LOG_LEVEL": "info",

	"DB_DRIVER":            "mysql",
	"DB_HOST":              "127.0.0.1",
	"DB_PORT":              "3306",
	"DB_DATABASE":          "belutin",
	"DB_USERNAME":          "root",
	"DB_PASSWORD":          "",
	"DB_MAX_OPEN_CONNS":    25,
	"DB_MAX_IDLE_CONNS":    25,
	"DB_CONN_MAX_LIFETIME": "5m",
	"SQLITE_PATH":          "./storage/belutin.db",

	"REDIS_HOST":     "127.0.0.1",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"SESSION_SECRET":    "change-this-session-secret",
	"SESSION_EXPIRE":    "24h",
	"JWT_SECRET":        "change-this-secret-key",
	"JWT_ACCESS_EXPIRE": "24h",

	"OTP_TTL":        "5m",
	"OTP_RATE_LIMIT": "5-M",
	"OTP_QUEUE":      true,

	"SMTP_HOST":     "",
	"SMTP_PORT":     587,
	"SMTP_USERNAME": "",
	"SMTP_PASSWORD": "",
	"SMTP_FROM":     "no-reply@belut.in",

	"WORKER_CONCURRENCY": 4,
}

// Load reads configuration from the environment, an optional .env file and an
// optional config file named by CONFIG_FILE. Environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env") // For when running from cmd/web or cmd/worker

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppName:  v.GetString("APP_NAME"),
		AppEnv:   v.GetString("APP_ENV"),
		AppPort:  v.GetString("APP_PORT"),
		AppURL:   v.GetString("APP_URL"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBDriver:          strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBDatabase:        v.GetString("DB_DATABASE"),
		DBUsername:        v.GetString("DB_USERNAME"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		SQLitePath:        v.GetString("SQLITE_PATH"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionExpire:   v.GetDuration("SESSION_EXPIRE"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTAccessExpire: v.GetDuration("JWT_ACCESS_EXPIRE"),

		OTPTTL:       v.GetDuration("OTP_TTL"),
		OTPRateLimit: v.GetString("OTP_RATE_LIMIT"),
		OTPQueue:     v.GetBool("OTP_QUEUE"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),

		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SMTPEnabled reports whether OTP codes can be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local",
		c.DBUsername,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBDatabase,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) GetSMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}
