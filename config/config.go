package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	Timezone          string
	DBPath            string
	RemoteEndpoint    string
	RemoteAPIKey      string
	RemoteTimeoutSecs int
	RainfallDataset   string // CSV or XLSX path imported at startup, optional
	ComplianceCatalog string // YAML catalog override, optional
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		Timezone:          get("TZ", "Asia/Kolkata"),
		DBPath:            get("DB_PATH", "rwh.db"),
		RemoteEndpoint:    get("ASSESSMENT_API_ENDPOINT", ""),
		RemoteAPIKey:      get("ASSESSMENT_API_KEY", ""),
		RemoteTimeoutSecs: getInt("ASSESSMENT_API_TIMEOUT_SECONDS", 10),
		RainfallDataset:   get("RAINFALL_DATASET", ""),
		ComplianceCatalog: get("COMPLIANCE_CATALOG", ""),
	}
	log.Printf("[cfg] port=%s db=%s remote=%q dataset=%q", cfg.Port, cfg.DBPath, cfg.RemoteEndpoint, cfg.RainfallDataset)
	return cfg
}
