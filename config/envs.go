package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Supported game store backends.
const (
	GameStoreMongo  = "mongo"
	GameStoreSQLite = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	GameStore       string // Backend for game persistence: mongo or sqlite
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	SQLiteDir       string // Directory holding the SQLite game database
	RedisAddr       string // host:port of the Redis server
	RedisPassword   string // Password for Redis, empty when none
	LockTTLSeconds  int    // Expiry of the per-game mutation lock
	LeaderboardSize int    // Entries kept per difficulty on the leaderboard
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	gameStore := getEnvWithDefault("GAME_STORE", GameStoreMongo)
	if gameStore != GameStoreMongo && gameStore != GameStoreSQLite {
		log.Fatalf("[APP] [FATAL] GAME_STORE must be %q or %q, got %q", GameStoreMongo, GameStoreSQLite, gameStore)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:          mustGetEnv("HOST_IP"),
		RESTPort:        mustGetEnvAsInt("REST_PORT"),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		JWTIssuer:       mustGetEnv("JWT_ISSUER"),
		GameStore:       gameStore,
		DBHost:          mustGetEnv("DB_HOST"),
		DBPort:          mustGetEnvAsInt("DB_PORT"),
		DBUser:          mustGetEnv("DB_USER"),
		DBPassword:      mustGetEnv("DB_PASS"),
		DBName:          mustGetEnv("DB_NAME"),
		SQLiteDir:       getEnvWithDefault("SQLITE_DIR", "./data"),
		RedisAddr:       mustGetEnv("REDIS_ADDR"),
		RedisPassword:   getEnvWithDefault("REDIS_PASS", ""),
		LockTTLSeconds:  getEnvAsIntWithDefault("LOCK_TTL_SECONDS", 5),
		LeaderboardSize: getEnvAsIntWithDefault("LEADERBOARD_SIZE", 100),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers. A value that does not parse is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
