package config

import (
	"fmt"     // Error formatting
	"net/url" // Seed URL validation
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // String manipulation
	"time"    // Timeout durations

	"github.com/joho/godotenv" // For loading .env files
)

// DefaultSeedURL is the remote JSON feed used by /initialize
const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	DBTimeout   time.Duration // Upper bound for a single store call
	RedisAddr   string        // Redis server address, empty disables the cache
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Lifetime of cached responses
	SeedURL     string        // Remote JSON feed for /initialize
	SeedTimeout time.Duration // Timeout for fetching the feed
	StatsYear   int           // Year used to turn a month into a date interval
	LogLevel    string        // Logrus level name
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:     getEnv("APP_PORT", "5000"),                     // Application port
		DBUser:      getEnv("DB_USER", "root"),                      // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),                       // Database password
		DBHost:      getEnv("DB_HOST", "localhost"),                 // Database host
		DBPort:      getEnv("DB_PORT", "3306"),                      // Database port
		DBName:      getEnv("DB_NAME", "transactions"),              // Database name
		DBTimeout:   getEnvDuration("DB_TIMEOUT", 10*time.Second),   // Store call timeout
		RedisAddr:   os.Getenv("REDIS_ADDR"),                        // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                        // Redis password
		RedisDB:     getEnvInt("REDIS_DB", 0),                       // Redis database number
		CacheTTL:    getEnvDuration("CACHE_TTL", 60*time.Second),    // Cache lifetime
		SeedURL:     getEnv("SEED_URL", DefaultSeedURL),             // Seed feed URL
		SeedTimeout: getEnvDuration("SEED_TIMEOUT", 30*time.Second), // Seed fetch timeout
		StatsYear:   getEnvInt("STATS_YEAR", 2023),                  // Year for monthly queries
		LogLevel:    getEnv("LOG_LEVEL", "info"),                    // Log level
		IsProd:      os.Getenv("IS_PROD") == "true",                 // Is production environment
	}
}

// Validate checks the configuration and reports every problem at once
func (c *Config) Validate() error {
	var problems []string // Collected validation errors
	// Port must be numeric and in range
	if port, err := strconv.Atoi(c.AppPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid APP_PORT %q", c.AppPort))
	}
	// Seed URL must be absolute http(s)
	if u, err := url.Parse(c.SeedURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid SEED_URL %q", c.SeedURL))
	}
	// Database coordinates end up in the DSN
	if port, err := strconv.Atoi(c.DBPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid DB_PORT %q", c.DBPort))
	}
	if c.DBHost == "" {
		problems = append(problems, "DB_HOST is required")
	}
	if c.DBUser == "" {
		problems = append(problems, "DB_USER is required")
	}
	if c.DBName == "" {
		problems = append(problems, "DB_NAME is required")
	}
	if c.DBTimeout <= 0 {
		problems = append(problems, "DB_TIMEOUT must be positive")
	}
	if c.SeedTimeout <= 0 {
		problems = append(problems, "SEED_TIMEOUT must be positive")
	}
	if c.CacheTTL <= 0 {
		problems = append(problems, "CACHE_TTL must be positive")
	}
	if c.StatsYear < 1970 || c.StatsYear > 9999 {
		problems = append(problems, fmt.Sprintf("invalid STATS_YEAR %d", c.StatsYear))
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the variable as an int or a fallback when unset or malformed
func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return fallback
}

// getEnvDuration returns the variable as a duration or a fallback when unset or malformed
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return fallback
}
