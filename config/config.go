package config

import (
	"os"
	"time"
)

type Config struct {
	ServerPort    string
	JWTSecret     string
	JWTExpiration time.Duration

	// StoreBackend selects the persistence variant: "memory" keeps the
	// document in process memory, "remote" mirrors it to a remote
	// file-storage API as one JSON file.
	StoreBackend   string
	RemoteBaseURL  string
	RemoteFileName string

	// CalendarPath optionally points at a YAML calendar document that
	// replaces the built-in pay periods and holiday set for the current
	// deployment year.
	CalendarPath string
	// AccountsPath optionally points at a YAML file of login accounts.
	AccountsPath string
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:  24 * time.Hour,
		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		RemoteBaseURL:  getEnv("REMOTE_STORE_URL", ""),
		RemoteFileName: getEnv("REMOTE_STORE_FILE", "mesai_takip.json"),
		CalendarPath:   getEnv("CALENDAR_FILE", ""),
		AccountsPath:   getEnv("ACCOUNTS_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
