package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	ServerPort string
	Env        string
	LogLevel   string

	// DBUrl is optional. When empty the audit trail is written to the log.
	DBUrl string

	DoctorRoster       []string
	CORSAllowedOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "3000"),
		Env:                getEnv("APP_ENV", EnvDevelopment),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBUrl:              getEnv("DATABASE_URL", ""),
		DoctorRoster:       getEnvList("DOCTOR_ROSTER"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 40),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
