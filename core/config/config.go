package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"report-reconciler/core/database"
	"report-reconciler/core/logger"
	"report-reconciler/core/outcome"
	"report-reconciler/core/reconcile"
	"report-reconciler/core/storage"
	"report-reconciler/feature/loader"
	"report-reconciler/feature/report"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional configuration file looked up next to the .env file.
const FileName = "reconciler"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Reconcile holds the options of the comparison pipeline.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Paths holds the layout of vendor folders and where inputs are read from.
	Paths loader.Config `mapstructure:"paths"`
	// Report holds configuration for the run log and the output workbook.
	Report report.Config `mapstructure:"report"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables, the .env file
// and an optional reconciler.yaml in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. RECONCILE_TOLERANCE -> reconcile.tolerance)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if _, err := c.Reconcile.Options(); err != nil {
		return fmt.Errorf("invalid reconcile config: %w", err)
	}
	if _, err := c.Messages(); err != nil {
		return fmt.Errorf("invalid report messages: %w", err)
	}

	sources := map[string]string{
		"manual_source":    c.Paths.ManualSource,
		"automated_source": c.Paths.AutomatedSource,
		"mapping_source":   c.Paths.MappingSource,
	}
	for name, kind := range sources {
		switch strings.ToLower(kind) {
		case loader.KindFile, loader.KindBucket:
		case loader.KindDatabase:
			if name != "automated_source" {
				return fmt.Errorf("invalid paths config: %s cannot be %q", name, kind)
			}
		default:
			return fmt.Errorf("invalid paths config: unknown %s %q", name, kind)
		}
	}

	switch strings.ToLower(c.Paths.Extension) {
	case ".xlsx", ".xlsm", ".csv":
	default:
		return fmt.Errorf("invalid paths config: unsupported extension %q", c.Paths.Extension)
	}
	return nil
}

// Messages returns the outcome messages with the configured overrides applied.
func (c *Config) Messages() (outcome.Messages, error) {
	return outcome.DefaultMessages().With(c.Report.Messages)
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

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Map:
			// Maps only come from the config file.
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
