package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr         string
	DBPath       string
	TemplateDir  string
	StaticDir    string
	SessionTTL   time.Duration
	LogLevel     string
	AppEnv       string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Only the SMTP password is a hard requirement, and only
// when an SMTP host is configured.
func Load() (*Config, error) {
	_ = godotenv.Load() // env vars alone are fine

	cfg := &Config{
		Addr:         getenv("ADDR", ":8080"),
		DBPath:       getenv("DB_PATH", "./data/blog.db"),
		TemplateDir:  getenv("TEMPLATE_DIR", "./web/templates"),
		StaticDir:    getenv("STATIC_DIR", "./web/static"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		AppEnv:       getenv("APP_ENV", "development"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailTo:       os.Getenv("MAIL_TO"),
	}

	ttlHours, err := strconv.Atoi(getenv("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	cfg.SMTPPort, _ = strconv.Atoi(getenv("SMTP_PORT", "587"))

	if cfg.SMTPHost != "" && cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD must be set when SMTP_HOST is configured")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, using 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
