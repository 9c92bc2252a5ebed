package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the console encoding (console, json).
	Format string `mapstructure:"format" default:"console"`
	// File is the path of the JSON audit log. Empty disables the file sink.
	File string `mapstructure:"file" default:"data/stacksync.log"`
}
