package config

// EnvPrefix is the envconfig namespace for all StallCraft variables.
const EnvPrefix = "STALLCRAFT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "STALLCRAFT_DB_DSN"
	EnvDBHost = "STALLCRAFT_DB_HOST"
	EnvDBUser = "STALLCRAFT_DB_USER"
	EnvDBName = "STALLCRAFT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
