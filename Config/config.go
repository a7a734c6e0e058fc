package Config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const placeholderAPIToken = "your-whatsapp-api-token"

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// Config is built once at startup and passed to every component that needs it.
type Config struct {
	HTTPAddr    string
	Environment string

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig

	AdminWhatsAppNumber string
	MessagingAPIToken   string
	MessagingPhoneID    string
	MessagingAPIBaseURL string

	OTPExposedInResponse bool
	OTPResendInterval    time.Duration
	OTPSweepInterval     time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	PublicBaseURL  string
	AllowedOrigins []string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":3005")
	cfg.Environment = strings.ToLower(getEnv("APP_ENV", "production"))

	cfg.Database.Enabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Name = getEnv("DB_NAME", "iranelaj")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.AdminWhatsAppNumber = getEnv("WHATSAPP_ADMIN_NUMBER", "+989120995507")
	cfg.MessagingAPIToken = getEnv("WHATSAPP_API_TOKEN", "")
	cfg.MessagingPhoneID = getEnv("WHATSAPP_PHONE_NUMBER_ID", "")
	cfg.MessagingAPIBaseURL = getEnv("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v17.0")

	cfg.OTPExposedInResponse = parseBool(getEnv("OTP_EXPOSE", ""), cfg.IsDevelopment())
	cfg.OTPResendInterval = parseDuration(getEnv("OTP_RESEND_INTERVAL", "60s"), time.Minute)
	cfg.OTPSweepInterval = parseDuration(getEnv("OTP_SWEEP_INTERVAL", "0"), 0)

	cfg.SessionSecret = getEnv("SESSION_SECRET", "")
	cfg.SessionTTL = 30 * 24 * time.Hour

	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/")
	cfg.AllowedOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = "development-session-secret"
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// MessagingConfigured reports whether programmatic WhatsApp delivery can be attempted.
func (c *Config) MessagingConfigured() bool {
	return c.MessagingAPIToken != "" && c.MessagingPhoneID != "" && c.MessagingAPIToken != placeholderAPIToken
}

func (c *Config) Validate() error {
	var errs []error
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.AdminWhatsAppNumber == "" {
		errs = append(errs, errors.New("WHATSAPP_ADMIN_NUMBER is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session ttl must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "0" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
