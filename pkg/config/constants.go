package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry explicit
	// COCOBLOOM_* tags so the prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv  = "COCOBLOOM_APP_ENV"
	EnvAppPort = "COCOBLOOM_APP_PORT"

	EnvDBDSN    = "COCOBLOOM_DB_DSN"
	EnvDBDriver = "COCOBLOOM_DB_DRIVER"
	EnvDBHost   = "COCOBLOOM_DB_HOST"
	EnvDBUser   = "COCOBLOOM_DB_USER"
	EnvDBName   = "COCOBLOOM_DB_NAME"

	EnvRedisURL = "COCOBLOOM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
