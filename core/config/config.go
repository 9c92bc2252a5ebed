package config

import (
	"reflect"
	"strings"

	"stacksync/core/bookstack"
	"stacksync/core/logger"
	"stacksync/core/server"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// API holds configuration for the BookStack API client.
	API bookstack.Config `mapstructure:"api"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Paths holds the file locations stacksync reads and writes.
	Paths Paths `mapstructure:"paths"`
	// Server holds configuration for the read-only artifact server.
	Server server.Config `mapstructure:"server"`
}

// Paths groups the on-disk artifacts of a run.
type Paths struct {
	// Hierarchy is the declarative desired-state document.
	Hierarchy string `mapstructure:"hierarchy" default:"data/hierarchy.yaml"`
	// Snapshot is the exported current-hierarchy JSON.
	Snapshot string `mapstructure:"snapshot" default:"data/hierarchy.json"`
	// OrphanReport is the orphan report JSON; removed when no orphans exist.
	OrphanReport string `mapstructure:"orphan_report" default:"data/orphans.json"`
	// Lock is the advisory lock taken around a run.
	Lock string `mapstructure:"lock" default:"data/stacksync.lock"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. API_BASE_URL -> api.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
