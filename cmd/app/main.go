package main

import (
	"log"
	"os"

	"github.com/andreyxaxa/Scan-Checkin/config"
	"github.com/andreyxaxa/Scan-Checkin/internal/app"
	"github.com/joho/godotenv"
)

const _defaultEnvFile = ".env"

func main() {
	// Config
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = _defaultEnvFile
	}

	if _, err := os.Stat(envFile); err == nil {
		err = godotenv.Load(envFile)
		if err != nil {
			log.Fatalf("config error: %s", err)
		}
	} else if envFile != _defaultEnvFile {
		log.Fatalf("config error: ENV_FILE %s: %s", envFile, err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	// Run
	app.Run(cfg)
}
