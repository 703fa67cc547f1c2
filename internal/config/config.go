package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by BRAINS_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("BRAINS_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// SnapshotSource returns where project snapshots are read from.
// Defaults to "file" if not set.
// Valid values: file, postgres
func SnapshotSource() string {
	s := os.Getenv("SNAPSHOT_SOURCE")
	if s == "" {
		return "file"
	}
	return s
}

// SnapshotPath returns the snapshot file used by the file source.
func SnapshotPath() string {
	p := os.Getenv("SNAPSHOT_PATH")
	if p == "" {
		return "project.json"
	}
	return p
}

// SchemaPath returns an optional YAML file of behavior property schemas.
func SchemaPath() string {
	return os.Getenv("SCHEMA_PATH")
}

// SnapshotReload reports whether snapshots are reloaded when the source changes.
// Defaults to true if not set.
func SnapshotReload() bool {
	v, err := strconv.ParseBool(os.Getenv("SNAPSHOT_RELOAD"))
	if err != nil {
		return true
	}
	return v
}

// SnapshotPollInterval returns how often the postgres source is polled.
// Defaults to 30s if not set.
func SnapshotPollInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("SNAPSHOT_POLL_INTERVAL"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// AdminAPIKey guards the routes that rebuild the behavior database.
// Empty disables them.
func AdminAPIKey() string {
	return os.Getenv("ADMIN_API_KEY")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
