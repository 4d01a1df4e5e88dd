package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Rest   RestConfig
	Mcp    McpConfig
	Google GoogleConfig
	Keep   KeepConfig
}

type AppConfig struct {
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type RestConfig struct {
	Host string
	Port string
}

type McpConfig struct {
	Host string
	Port string
	Path string
}

type GoogleConfig struct {
	Email       string
	MasterToken string
}

// KeepConfig carries behaviour switches for the Keep gateway itself.
// UnsafeMode disables the ownership check on note mutations.
type KeepConfig struct {
	UnsafeMode bool
	APIBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "keep-gateway.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Rest: RestConfig{
			Host: getEnv("REST_API_HOST", "0.0.0.0"),
			Port: getEnv("REST_API_PORT", "8001"),
		},
		Mcp: McpConfig{
			Host: getEnv("MCP_HOST", "0.0.0.0"),
			Port: getEnv("MCP_PORT", "8000"),
			Path: getEnv("MCP_PATH", "/mcp"),
		},
		Google: GoogleConfig{
			Email:       getEnv("GOOGLE_EMAIL", ""),
			MasterToken: getEnv("GOOGLE_MASTER_TOKEN", ""),
		},
		Keep: KeepConfig{
			UnsafeMode: getEnvAsBool("UNSAFE_MODE", false),
			APIBaseURL: getEnv("KEEP_API_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
