package config

import (
	"os"
	"strconv"

	"github.com/campuskit/registrar-service/internal/utils"
)

type Config struct {
	AppName      string
	AppPort      string
	AppUrl       string
	DatabaseURL  string
	SeedDemoData bool
}

// build-time override, set with -ldflags
var AppName = "registrar-service"

// LoadConfig reads the runtime environment and fails fast on anything
// missing; a half-configured service should never come up.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	seed := false
	if raw := os.Getenv("SEED_DEMO_DATA"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.Logger.Fatalf("SEED_DEMO_DATA is not a bool: %q", raw)
		}
		seed = parsed
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		AppName:      AppName,
		AppPort:      appPort,
		AppUrl:       appURL,
		DatabaseURL:  dbURL,
		SeedDemoData: seed,
	}
}
