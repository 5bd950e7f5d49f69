package config

const (
	EnvPrefix = "VERDULERIA"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "VERDULERIA_APP_ENV"
	EnvPort   = "VERDULERIA_APP_PORT"

	EnvDBDSN  = "VERDULERIA_DB_DSN"
	EnvDBHost = "VERDULERIA_DB_HOST"
	EnvDBUser = "VERDULERIA_DB_USER"
	EnvDBName = "VERDULERIA_DB_NAME"

	EnvRedisURL = "VERDULERIA_REDIS_URL"

	EnvAdminChatID    = "VERDULERIA_ADMIN_CHAT_ID"
	EnvSupplierChatID = "VERDULERIA_SUPPLIER_CHAT_ID"

	EnvGCPProjectID = "VERDULERIA_GCP_PROJECT_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
