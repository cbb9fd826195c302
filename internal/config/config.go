package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Snapshot backend names accepted in SNAPSHOT_BACKEND.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Database credentials are read only when the
// snapshot backend is "mysql"; the Gemini key is optional and its absence
// switches production planning to the local fallback.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	JWTSecret       string // secret used to sign JWTs
	AccessTTLMin    int    // access token time-to-live in minutes
	SnapshotBackend string // "file", "redis", "mysql" or "memory"
	SnapshotPath    string // snapshot file path (file backend)
	SnapshotKey     string // snapshot key name (redis backend)
	DBUser          string // database username (mysql backend)
	DBPass          string // database password, optional (mysql backend)
	DBHost          string // database host address (mysql backend)
	DBPort          string // database port number (mysql backend)
	DBName          string // database name (mysql backend)
	GeminiAPIKey    string // generative-AI API key, optional
	GeminiModel     string // generative-AI model name
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),                 // environment (dev/test/prod)
		Port:            must("APP_PORT"),                // port to bind the HTTP server
		JWTSecret:       must("JWT_SECRET"),              // secret used for signing JWTs
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"), // TTL for access tokens in minutes
		SnapshotBackend: getenv("SNAPSHOT_BACKEND", BackendFile),
		SnapshotPath:    getenv("SNAPSHOT_PATH", "aquaflow_db.json"),
		SnapshotKey:     getenv("SNAPSHOT_KEY", "aquaflow_db"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-3-flash-preview"),
	}
	if cfg.SnapshotBackend == BackendMySQL {
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = must("DB_PORT")      // database port
		cfg.DBName = must("DB_NAME")      // database name
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the value of an optional environment variable, or def
// when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
