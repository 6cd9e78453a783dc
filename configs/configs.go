// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted in TRACKER_BACKEND.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// Backend selects the table store: "sheets" (default) or "postgres".
	Backend string

	// Sheets contains Google Sheets connection settings.
	Sheets SheetsConfig

	// DBDSN is the Postgres connection string for the relational backend.
	DBDSN string

	// Kafka contains the optional mutation-event stream settings.
	// Events are disabled when Broker is empty.
	Kafka KafkaConfig

	// ServerPort is the HTTP listen port.
	ServerPort string

	// DebugMode toggles gin debug output.
	DebugMode bool
}

// SheetsConfig holds Google Sheets access settings.
type SheetsConfig struct {
	// SpreadsheetID is the spreadsheet holding the Order Book and reference tabs.
	SpreadsheetID string

	// CredentialsFile is a path to a service-account JSON key file.
	CredentialsFile string

	// CredentialsJSON is the service-account key inlined in the environment.
	// Takes precedence over CredentialsFile when both are set.
	CredentialsJSON string

	// ReadsPerMinute caps Sheets API calls. Google allows 60 read
	// requests per minute per user, so the default stays under that.
	ReadsPerMinute int
}

// KafkaConfig holds Kafka connection settings for mutation events.
type KafkaConfig struct {
	// Broker is the Kafka broker address (e.g., "localhost:9092").
	Broker string

	// Topic is the Kafka topic for ledger mutation events.
	Topic string
}

// getDatabaseDSN constructs the Postgres DSN from environment variables.
func getDatabaseDSN() string {
	if dsn := getEnv("DATABASE_DSN", ""); dsn != "" {
		return dsn
	}

	dbUser := getEnv("POSTGRES_USER", "onetrack")
	dbPassword := getEnv("POSTGRES_PASSWORD", "onetrack")
	dbHost := getEnv("POSTGRES_HOST", "localhost")
	dbPort := getEnv("POSTGRES_PORT", "5432")
	dbName := getEnv("POSTGRES_DB", "onetrack")

	return "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=disable"
}

// AppLoad loads all application configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	_ = godotenv.Load() // Ignore error - .env is optional

	return &AppConfig{
		Backend: getEnv("TRACKER_BACKEND", BackendSheets),
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			ReadsPerMinute:  getEnvInt("SHEETS_READS_PER_MINUTE", 50),
		},
		DBDSN: getDatabaseDSN(),
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
			Topic:  getEnv("KAFKA_MUTATION_TOPIC", "onetrack_mutations"),
		},
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DebugMode:  getEnv("DEBUGMODE", "") == "True",
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
