package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr       = ":8080"
	DefaultDriver     = "memory"
	DefaultAPIURL     = "http://localhost:8080"
	DefaultCORSOrigin = "*"
	DefaultLogLevel   = "info"
)

type Config struct {
	Addr       string
	DBDriver   string
	DBDSN      string
	APIURL     string
	CORSOrigin string
	LogLevel   string
}

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found so the caller can log it once
// the logger is configured.
func Load() (Config, bool) {
	envLoaded := godotenv.Load() == nil

	cfg := Config{
		Addr:       getenv("NOTES_ADDR", DefaultAddr),
		DBDriver:   getenv("NOTES_DB_DRIVER", DefaultDriver),
		DBDSN:      getenv("NOTES_DB_DSN", ""),
		APIURL:     strings.TrimRight(getenv("NOTES_API_URL", DefaultAPIURL), "/"),
		CORSOrigin: getenv("NOTES_CORS_ORIGIN", DefaultCORSOrigin),
		LogLevel:   getenv("NOTES_LOG_LEVEL", DefaultLogLevel),
	}
	if cfg.DBDriver == "postgres" && cfg.DBDSN == "" {
		cfg.DBDSN = PostgresDSNFromEnv()
	}
	return cfg, envLoaded
}

// PostgresDSNFromEnv builds a postgres URL from the user, password, host,
// port and dbname variables.
func PostgresDSNFromEnv() string {
	dbUser := strings.TrimSpace(os.Getenv("user"))
	dbPass := strings.TrimSpace(os.Getenv("password"))
	dbHost := strings.TrimSpace(os.Getenv("host"))
	dbPort := strings.TrimSpace(os.Getenv("port"))
	dbName := strings.TrimSpace(os.Getenv("dbname"))
	sslMode := getenv("sslmode", "require")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", dbUser, dbPass, dbHost, dbPort, dbName, sslMode)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
