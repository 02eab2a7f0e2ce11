// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port               int
	DBPath             string
	JWTSecret          string
	CORSOrigins        []string
	LogLevel           slog.Level
	LoginRatePerMinute int
}

const (
	defaultPort      = 8080
	defaultDBPath    = "data/content-analytics.db"
	defaultLoginRate = 10
)

// DefaultCORSOrigins is the Vite dev server the web frontend runs on.
var DefaultCORSOrigins = []string{"http://localhost:5173"}

// Load reads envFile (if it exists) into the process environment and then
// builds a Config from it. Variables already set win over the file.
//
//	PORT                   default 8080
//	DB_PATH                default data/content-analytics.db
//	JWT_SECRET             required, at least 16 characters
//	CORS_ORIGINS           comma separated, default http://localhost:5173
//	LOG_LEVEL              debug | info | warn | error, default info
//	LOGIN_RATE_PER_MINUTE  per IP on /api/auth/*, 0 disables, default 10
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:               defaultPort,
		DBPath:             defaultDBPath,
		CORSOrigins:        DefaultCORSOrigins,
		LogLevel:           slog.LevelInfo,
		LoginRatePerMinute: defaultLoginRate,
	}

	var err error
	if cfg.Port, err = intEnv("PORT", defaultPort); err != nil {
		return nil, err
	}
	if cfg.LoginRatePerMinute, err = intEnv("LOGIN_RATE_PER_MINUTE", defaultLoginRate); err != nil {
		return nil, err
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return n, nil
}
