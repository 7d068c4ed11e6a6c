package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at configPath (a missing default file is not an
// error), applies environment overrides and validates the result.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeInto(&cfg, content); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.LookupEnv)
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

// Parse decodes YAML content on top of the defaults without touching the
// environment.
func Parse(content []byte) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if err := decodeInto(&cfg, content); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeInto(cfg *AppConfig, content []byte) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	applyRawAppConfig(cfg, raw)
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Mongo: MongoConfig{
			URI:                   defaultMongoURI,
			Database:              defaultMongoDatabase,
			ConnectTimeoutSeconds: defaultMongoTimeout,
		},
		Redis: RedisConfig{
			URL: defaultRedisURL,
		},
		Geo: GeoConfig{
			Enable:    true,
			Endpoint:  defaultGeoEndpoint,
			TimeoutMS: defaultGeoTimeoutMS,
		},
		Visitors: VisitorsConfig{
			DefaultPageSize: defaultVisitorPageSize,
			MaxPageSize:     defaultVisitorMaxPageSize,
		},
		RateLimit: RateLimitConfig{
			Enable:        true,
			Max:           defaultRateLimitMax,
			WindowSeconds: defaultRateLimitWindow,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}

	if v := strings.TrimSpace(raw.Mongo.URI); v != "" {
		cfg.Mongo.URI = v
	}
	if v := strings.TrimSpace(raw.Mongo.Database); v != "" {
		cfg.Mongo.Database = v
	}
	if raw.Mongo.ConnectTimeoutSeconds != 0 {
		cfg.Mongo.ConnectTimeoutSeconds = raw.Mongo.ConnectTimeoutSeconds
	}

	if raw.Redis.Enable != nil {
		cfg.Redis.Enable = *raw.Redis.Enable
	}
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.Redis.URL = v
	}

	if raw.Geo.Enable != nil {
		cfg.Geo.Enable = *raw.Geo.Enable
	}
	if v := strings.TrimSpace(raw.Geo.Endpoint); v != "" {
		cfg.Geo.Endpoint = v
	}
	if raw.Geo.TimeoutMS != 0 {
		cfg.Geo.TimeoutMS = raw.Geo.TimeoutMS
	}

	if raw.Visitors.DefaultPageSize != 0 {
		cfg.Visitors.DefaultPageSize = raw.Visitors.DefaultPageSize
	}
	if raw.Visitors.MaxPageSize != 0 {
		cfg.Visitors.MaxPageSize = raw.Visitors.MaxPageSize
	}

	if raw.RateLimit.Enable != nil {
		cfg.RateLimit.Enable = *raw.RateLimit.Enable
	}
	if raw.RateLimit.Max != 0 {
		cfg.RateLimit.Max = raw.RateLimit.Max
	}
	if raw.RateLimit.WindowSeconds != 0 {
		cfg.RateLimit.WindowSeconds = raw.RateLimit.WindowSeconds
	}

	if v := strings.TrimSpace(raw.Frontend.URL); v != "" {
		cfg.Frontend.URL = v
	}
	if v := strings.TrimSpace(raw.Frontend.RevalidateToken); v != "" {
		cfg.Frontend.RevalidateToken = v
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Geo.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Geo.Endpoint), "/")
	cfg.Frontend.URL = strings.TrimRight(cfg.Frontend.URL, "/")
}

// Validate reports the first invalid field.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if strings.TrimSpace(c.Mongo.URI) == "" {
		return errors.New("mongo.uri is required")
	}
	if strings.TrimSpace(c.Mongo.Database) == "" {
		return errors.New("mongo.database is required")
	}
	if c.Mongo.ConnectTimeoutSeconds < 1 {
		return fmt.Errorf("invalid mongo.connect_timeout_seconds %d, expected >= 1", c.Mongo.ConnectTimeoutSeconds)
	}
	if c.Geo.Enable && c.Geo.Endpoint == "" {
		return errors.New("geo.endpoint is required when geo is enabled")
	}
	if c.Geo.TimeoutMS < 1 {
		return fmt.Errorf("invalid geo.timeout_ms %d, expected >= 1", c.Geo.TimeoutMS)
	}
	if c.Visitors.DefaultPageSize < 1 || c.Visitors.MaxPageSize < c.Visitors.DefaultPageSize {
		return fmt.Errorf("invalid visitors page sizes default=%d max=%d", c.Visitors.DefaultPageSize, c.Visitors.MaxPageSize)
	}
	if c.RateLimit.Enable && (c.RateLimit.Max < 1 || c.RateLimit.WindowSeconds < 1) {
		return fmt.Errorf("invalid rate_limit max=%d window_seconds=%d", c.RateLimit.Max, c.RateLimit.WindowSeconds)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}
