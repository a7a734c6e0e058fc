package Config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("WHATSAPP_API_TOKEN", "")
	t.Setenv("OTP_EXPOSE", "")

	cfg := Load()

	assert.Equal(t, ":3005", cfg.HTTPAddr)
	assert.Equal(t, "+989120995507", cfg.AdminWhatsAppNumber)
	assert.False(t, cfg.OTPExposedInResponse)
	assert.False(t, cfg.MessagingConfigured())
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.OTPResendInterval)
	assert.Error(t, cfg.Validate(), "production without a session secret must not validate")
}

func TestLoad_DevelopmentExposesOTP(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("OTP_EXPOSE", "")
	t.Setenv("SESSION_SECRET", "")

	cfg := Load()

	assert.True(t, cfg.OTPExposedInResponse)
	assert.NotEmpty(t, cfg.SessionSecret)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("OTP_EXPOSE", "false")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "https://iranelaj.com, http://localhost:3000 ,")
	t.Setenv("PUBLIC_BASE_URL", "https://iranelaj.com/")
	t.Setenv("OTP_SWEEP_INTERVAL", "5m")

	cfg := Load()

	assert.False(t, cfg.OTPExposedInResponse)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, []string{"https://iranelaj.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://iranelaj.com", cfg.PublicBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.OTPSweepInterval)
}

func TestMessagingConfigured(t *testing.T) {
	cfg := &Config{MessagingAPIToken: "token", MessagingPhoneID: "123"}
	assert.True(t, cfg.MessagingConfigured())

	cfg.MessagingAPIToken = placeholderAPIToken
	assert.False(t, cfg.MessagingConfigured())

	cfg.MessagingAPIToken = "token"
	cfg.MessagingPhoneID = ""
	assert.False(t, cfg.MessagingConfigured())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}
