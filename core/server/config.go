package server

// Config holds configuration for the read-only artifact server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8081"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
}
