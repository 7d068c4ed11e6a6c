package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvPort        = "BLOG_ADMIN_PORT"
	EnvMode        = "BLOG_ADMIN_ENV"
	EnvMongoURI    = "MONGODB_URI"
	EnvMongoDB     = "MONGODB_DB"
	EnvRedisURL    = "REDIS_URL"
	EnvJWTSecret   = "JWT_SECRET"
	EnvGeoEndpoint = "GEO_ENDPOINT"

	EnvFrontendURL     = "FRONTEND_URL"
	EnvRevalidateToken = "REVALIDATE_TOKEN"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvPort); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v, ok := get(EnvMode); ok {
		cfg.Env = v
	}
	if v, ok := get(EnvMongoURI); ok {
		cfg.Mongo.URI = v
	}
	if v, ok := get(EnvMongoDB); ok {
		cfg.Mongo.Database = v
	}
	if v, ok := get(EnvRedisURL); ok {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}
	if v, ok := get(EnvJWTSecret); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get(EnvGeoEndpoint); ok {
		cfg.Geo.Endpoint = v
	}
	if v, ok := get(EnvFrontendURL); ok {
		cfg.Frontend.URL = v
	}
	if v, ok := get(EnvRevalidateToken); ok {
		cfg.Frontend.RevalidateToken = v
	}
}
