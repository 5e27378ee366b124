package config

// EnvPrefix is passed to envconfig; every field carries its full name anyway.
const EnvPrefix = "ESIHLE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceFixture = "fixture"
	CatalogSourceDB      = "db"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv        = "ESIHLE_APP_ENV"
	EnvPort          = "ESIHLE_APP_PORT"
	EnvCatalogSource = "ESIHLE_CATALOG_SOURCE"
	EnvDBDSN         = "ESIHLE_DB_DSN"
	EnvDBDriver      = "ESIHLE_DB_DRIVER"
	EnvDBHost        = "ESIHLE_DB_HOST"
	EnvDBUser        = "ESIHLE_DB_USER"
	EnvDBName        = "ESIHLE_DB_NAME"
	EnvDBPassword    = "ESIHLE_DB_PASSWORD"
	EnvRedisURL      = "ESIHLE_REDIS_URL"
	EnvSessionSecret = "ESIHLE_SESSION_SECRET"
	EnvSessionTTL    = "ESIHLE_SESSION_TTL"
	EnvWhatsAppPhone = "ESIHLE_WHATSAPP_PHONE"
	EnvCORSOrigins   = "ESIHLE_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
