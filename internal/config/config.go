package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	FeedURL          string
	ListenAddr       string
	DataPath         string
	LogDir           string
	FactoryTZ        string
	AISummaryURL     string
	AISummaryTimeout time.Duration
	FetchTimeout     time.Duration

	// Location is the factory-local timezone, resolved once at startup.
	// Shift-day boundaries are computed against this location only.
	Location *time.Location
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for services)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	fetchSecs, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	aiSecs, _ := strconv.Atoi(getEnv("AI_SUMMARY_TIMEOUT_SECONDS", "45"))

	cfg := &AppConfig{
		FeedURL:          getEnv("FEED_URL", ""),
		ListenAddr:       getEnv("LISTEN_ADDR", ":8385"),
		DataPath:         dataPath,
		LogDir:           logDir,
		FactoryTZ:        getEnv("FACTORY_TZ", "Asia/Kolkata"),
		AISummaryURL:     getEnv("AI_SUMMARY_URL", ""),
		AISummaryTimeout: time.Duration(aiSecs) * time.Second,
		FetchTimeout:     time.Duration(fetchSecs) * time.Second,
	}

	loc, err := time.LoadLocation(cfg.FactoryTZ)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.FactoryTZ).Msg("Unknown factory timezone, falling back to local")
		loc = time.Local
	}
	cfg.Location = loc

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
