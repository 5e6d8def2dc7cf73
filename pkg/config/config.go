package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                      string
	Env                       string
	FirebaseCredentialsPath   string
	PostgresUrl               string
	MongoURI                  string
	UpstreamBaseURL           string
	UpstreamTimeoutSeconds    int
	SandboxAdminID            string
	AdminEmail                string
	AdminPasswordHash         string
	FeatureSettingsTTLSeconds int
	BannerInterval            int
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresUrl:             getEnv("POSTGRES_URL", "http://localhost:5432"),
		MongoURI:                getEnv("MONGO_URI", ""),
		UpstreamBaseURL:         getEnv("UPSTREAM_BASE_URL", "http://localhost:4000"),
		UpstreamTimeoutSeconds:  getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		SandboxAdminID:          getEnv("SANDBOX_ADMIN_ID", "admin-1"),
		AdminEmail:              getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPasswordHash:       getEnv("ADMIN_PASSWORD_HASH", ""),
		// Zero means every request refetches; raise it to restore real caching.
		FeatureSettingsTTLSeconds: getEnvInt("FEATURE_SETTINGS_TTL_SECONDS", 0),
		BannerInterval:            getEnvInt("BANNER_INTERVAL", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
