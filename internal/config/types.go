package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and env.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	JWTSecret      string          `yaml:"jwt_secret"`
	Timezone       string          `yaml:"timezone"`
	LogDir         string          `yaml:"log_dir"`
	Mongo          MongoConfig     `yaml:"mongo"`
	Redis          RedisConfig     `yaml:"redis"`
	Geo            GeoConfig       `yaml:"geo"`
	Visitors       VisitorsConfig  `yaml:"visitors"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	Frontend       FrontendConfig  `yaml:"frontend"`
}

type MongoConfig struct {
	URI                   string `yaml:"uri"`
	Database              string `yaml:"database"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
}

// ConnectTimeout returns the dial/ping budget for the initial connection.
func (m MongoConfig) ConnectTimeout() time.Duration {
	return time.Duration(m.ConnectTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Enable bool   `yaml:"enable"`
	URL    string `yaml:"url"`
}

type GeoConfig struct {
	Enable    bool   `yaml:"enable"`
	Endpoint  string `yaml:"endpoint"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Timeout returns the per-lookup HTTP timeout.
func (g GeoConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutMS) * time.Millisecond
}

type VisitorsConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type RateLimitConfig struct {
	Enable        bool `yaml:"enable"`
	Max           int  `yaml:"max"`
	WindowSeconds int  `yaml:"window_seconds"`
}

// Window returns the fixed-window length.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// FrontendConfig points at the public site whose page cache is purged after
// article changes. An empty URL disables revalidation.
type FrontendConfig struct {
	URL             string `yaml:"url"`
	RevalidateToken string `yaml:"revalidate_token"`
}

// rawAppConfig mirrors AppConfig with pointer booleans so an omitted key
// keeps its default instead of becoming false.
type rawAppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	JWTSecret      string             `yaml:"jwt_secret"`
	Timezone       string             `yaml:"timezone"`
	LogDir         string             `yaml:"log_dir"`
	Mongo          MongoConfig        `yaml:"mongo"`
	Redis          rawRedisConfig     `yaml:"redis"`
	Geo            rawGeoConfig       `yaml:"geo"`
	Visitors       VisitorsConfig     `yaml:"visitors"`
	RateLimit      rawRateLimitConfig `yaml:"rate_limit"`
	Frontend       FrontendConfig     `yaml:"frontend"`
}

type rawRedisConfig struct {
	Enable *bool  `yaml:"enable"`
	URL    string `yaml:"url"`
}

type rawGeoConfig struct {
	Enable    *bool  `yaml:"enable"`
	Endpoint  string `yaml:"endpoint"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

type rawRateLimitConfig struct {
	Enable        *bool `yaml:"enable"`
	Max           int   `yaml:"max"`
	WindowSeconds int   `yaml:"window_seconds"`
}
