package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "irrigo"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "IRRIGO_APP_ENV"
	EnvPort       = "IRRIGO_APP_PORT"
	EnvDBDSN      = "IRRIGO_DB_DSN"
	EnvDBHost     = "IRRIGO_DB_HOST"
	EnvDBUser     = "IRRIGO_DB_USER"
	EnvDBName     = "IRRIGO_DB_NAME"
	EnvRedisURL   = "IRRIGO_REDIS_URL"
	EnvJWTSecret  = "IRRIGO_JWT_SECRET"
	EnvJWTIssuer  = "IRRIGO_JWT_ISSUER"
	EnvJWTExpMins = "IRRIGO_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
