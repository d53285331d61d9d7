package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

func Logger() *logrus.Logger {
	return logg
}

// Load reads .env if present; real env vars win over file values.
func Load() {
	if err := godotenv.Load(); err == nil {
		logg.Info("loaded configuration from .env")
	}
	if lvl, err := logrus.ParseLevel(Env("LOG_LEVEL", "info")); err == nil {
		logg.SetLevel(lvl)
	}
}

func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Addr() string      { return Env("ADDR", ":8080") }
func DBPath() string    { return Env("DB_PATH", "gestionale.db") }
func AppName() string   { return Env("APP_NAME", "Gestionale Laboratori") }
func FromEmail() string { return Env("MAIL_FROM", "noreply@gestionale.local") }

// SendgridKey empty means campaign mail falls back to the console sender.
func SendgridKey() string { return Env("SENDGRID_API_KEY", "") }
