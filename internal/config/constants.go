package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort               = 2333
	defaultEnv                = "development"
	defaultMongoURI           = "mongodb://127.0.0.1:27017"
	defaultMongoDatabase      = "blogs"
	defaultMongoTimeout       = 10
	defaultRedisURL           = "redis://localhost:6379/0"
	defaultGeoEndpoint        = "http://ip-api.com/json"
	defaultGeoTimeoutMS       = 3000
	defaultVisitorPageSize    = 10
	defaultVisitorMaxPageSize = 200
	defaultRateLimitMax       = 10
	defaultRateLimitWindow    = 60
)
