package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "MEALDIARY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv = "MEALDIARY_APP_ENV"
	EnvDBDSN  = "MEALDIARY_DB_DSN"
	EnvDBHost = "MEALDIARY_DB_HOST"
	EnvDBUser = "MEALDIARY_DB_USER"
	EnvDBName = "MEALDIARY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
