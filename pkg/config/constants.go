package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "ROTABOARD_DB_DSN"
	EnvDBHost = "ROTABOARD_DB_HOST"
	EnvDBUser = "ROTABOARD_DB_USER"
	EnvDBName = "ROTABOARD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
