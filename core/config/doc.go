// Package config provides configuration management for stacksync.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided
// into subsections:
//   - API: BookStack base URL, token pair, pagination and retry tuning
//   - Log: logging level, format, audit log path
//   - Paths: hierarchy document, snapshot export, orphan report, lock file
//   - Server: read-only artifact server (port, API key)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
