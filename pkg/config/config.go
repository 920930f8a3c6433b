package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. Every stage receives paths and
// table lists from here; nothing reads the environment on its own.
type Config struct {
	DatabaseURL            string `validate:"required"`
	RawDataDir             string `validate:"required"`
	ProcessedDir           string // empty disables relocation of loaded files
	MigrationsPath         string `validate:"required"`
	DepartmentMappingsPath string `validate:"required"`
	ExpectedTables         []string
	Port                   string
	IsProduction           bool
}

// defaultExpectedTables is the full table set the schema manager checks for.
var defaultExpectedTables = []string{
	"raw_invoices", "raw_payments",
	"validated_invoices", "validated_payments",
	"customers", "departments", "invoices", "payments",
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RAW_DATA_DIR", "./data/raw")
	viper.SetDefault("PROCESSED_DIR", "./data/processed")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DEPARTMENT_MAPPINGS_PATH", "./config/department_mappings.json")
	viper.SetDefault("EXPECTED_TABLES", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		RawDataDir:             viper.GetString("RAW_DATA_DIR"),
		ProcessedDir:           viper.GetString("PROCESSED_DIR"),
		MigrationsPath:         viper.GetString("MIGRATIONS_PATH"),
		DepartmentMappingsPath: viper.GetString("DEPARTMENT_MAPPINGS_PATH"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	// EXPECTED_TABLES overrides the built-in table set, comma separated.
	if raw := viper.GetString("EXPECTED_TABLES"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.ExpectedTables = append(cfg.ExpectedTables, strings.ToLower(name))
			}
		}
	} else {
		cfg.ExpectedTables = append(cfg.ExpectedTables, defaultExpectedTables...)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
