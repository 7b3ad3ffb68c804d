package server

import (
	"os"
	"strings"
)

// Config holds the backend settings, loaded from environment variables
// with development defaults.
type Config struct {
	Port        string
	RedisAddr   string
	TokenSecret string

	AllowedOrigins []string
}

func LoadConfig() Config {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "9000"
	}

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	allowed := strings.Split(origins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return Config{
		Port:           port,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		TokenSecret:    secret,
		AllowedOrigins: allowed,
	}
}
