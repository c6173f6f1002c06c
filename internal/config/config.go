package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache expiration windows

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	DBDriver          string        // Database driver: mysql or postgres
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name
	DBAutoMigrate     bool          // Run migrations on server boot
	CacheDriver       string        // User listing cache: memory or redis
	CacheTTL          time.Duration // Sliding expiration of the user listing
	CacheSize         int           // Max entries held by the in-process cache
	InvalidateOnWrite bool          // Drop the user listing on every write
	RedisAddr         string        // Redis server address
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	JWTSecret         string        // JWT secret key, empty disables operator auth
	LogLevel          string        // Logrus level name
	IsProd            bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),                       // Application port
		DBDriver:          getEnv("DB_DRIVER", "mysql"),                     // Database driver
		DBUser:            os.Getenv("DB_USER"),                             // Database user
		DBPassword:        os.Getenv("DB_PASSWORD"),                         // Database password
		DBHost:            getEnv("DB_HOST", "127.0.0.1"),                   // Database host
		DBPort:            os.Getenv("DB_PORT"),                             // Database port
		DBName:            os.Getenv("DB_NAME"),                             // Database name
		DBAutoMigrate:     os.Getenv("DB_AUTO_MIGRATE") == "true",           // Migrate on boot
		CacheDriver:       getEnv("CACHE_DRIVER", "memory"),                 // Cache backend
		CacheTTL:          getDuration("CACHE_TTL", time.Minute),            // Sliding expiration
		CacheSize:         getInt("CACHE_SIZE", 128),                        // In-process cache size
		InvalidateOnWrite: os.Getenv("CACHE_INVALIDATE_ON_WRITE") == "true", // Writers drop the listing
		RedisAddr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),           // Redis server address
		RedisPass:         os.Getenv("REDIS_PASS"),                          // Redis password
		RedisDB:           getInt("REDIS_DB", 0),                            // Redis database number
		JWTSecret:         os.Getenv("JWT_SECRET"),                          // JWT secret key
		LogLevel:          getEnv("LOG_LEVEL", "info"),                      // Log level
		IsProd:            os.Getenv("IS_PROD") == "true",                   // Is production environment
	}
}

// getEnv returns the variable or def when it is unset or empty
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt parses an integer variable, falling back to def on absence or garbage
func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getDuration accepts "90s", "5m" or a bare number of seconds
func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return def
}
