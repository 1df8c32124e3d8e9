package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Input sources understood by storage.NewReader.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputSource   string
	CSVInputPath  string
	PostgresTable string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	MaxRetries     int

	OutputDir    string
	ChartsConfig string
	RenderPDF    bool
	ChromeBin    string

	LogMode string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputSource:   strings.ToLower(getEnv("INPUT_SOURCE", SourceCSV)),
		CSVInputPath:  getEnv("CSV_INPUT_PATH", "AB_NYC_2019.csv"),
		PostgresTable: getEnv("POSTGRES_TABLE", "listings"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analyst"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analyst"),
		PostgresDB:       getEnv("POSTGRES_DB", "airbnb"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		OutputDir:    getEnv("OUTPUT_DIR", "./output"),
		ChartsConfig: getEnv("CHARTS_CONFIG", ""),
		RenderPDF:    getEnvBool("RENDER_PDF", false),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		LogMode: getEnv("LOG_MODE", "dev"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
