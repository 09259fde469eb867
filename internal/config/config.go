package config // config loads runtime settings from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration. Each field maps to one
// environment variable; required ones are enforced by must() at
// startup so a misconfigured process fails fast instead of limping.
type Config struct {
	Env            string // APP_ENV (dev/test/prod)
	Port           string // APP_PORT
	DBUser         string // DB_USER
	DBPass         string // DB_PASS (empty allowed)
	DBHost         string // DB_HOST
	DBPort         string // DB_PORT
	DBName         string // DB_NAME
	JWTSecret      string // JWT_SECRET, signs every access token
	AccessTTLMin   int    // ACCESS_TOKEN_TTL_MIN, default 60
	RefreshTTLDays int    // REFRESH_TOKEN_TTL_DAYS, default 7
	BcryptCost     int    // BCRYPT_COST, default 10
}

// Load reads the environment into a Config. Missing required values
// abort the process with a fatal log.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 10),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
