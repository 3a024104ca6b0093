package database

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// parseBoolEnv reads an environment variable and parses it as a boolean.
// Returns the parsed value and a boolean indicating if the variable was present.
// Supports common boolean representations: true/false, 1/0, yes/no, on/off (case-insensitive).
func parseBoolEnv(key string) (bool, bool) {
	value := os.Getenv(key)
	if value == "" {
		return false, false
	}

	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, true
	}

	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

// Config holds all database configuration options
type Config struct {
	// Database connection settings
	Path                  string        `json:"path" yaml:"path"`                                   // Database file path
	MaxConnections        int           `json:"maxConnections" yaml:"maxConnections"`               // Maximum number of open connections
	MaxIdleConns          int           `json:"maxIdleConns" yaml:"maxIdleConns"`                   // Maximum number of idle connections
	ConnMaxLifetime       time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`             // Maximum connection lifetime
	ConnMaxIdleTime       time.Duration `json:"connMaxIdleTime" yaml:"connMaxIdleTime"`             // Maximum connection idle time
	ForceSingleConnection bool          `json:"forceSingleConnection" yaml:"forceSingleConnection"` // Force single connection mode for SQLite

	// Migration settings
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"` // Whether to run migrations automatically on startup

	// Performance settings
	JournalMode     string `json:"journalMode" yaml:"journalMode"`         // SQLite journal mode (WAL, DELETE, etc.)
	SynchronousMode string `json:"synchronousMode" yaml:"synchronousMode"` // SQLite synchronous mode (FULL, NORMAL, OFF)
	CacheSize       int    `json:"cacheSize" yaml:"cacheSize"`             // SQLite cache size in KB
	BusyTimeout     int    `json:"busyTimeout" yaml:"busyTimeout"`         // SQLite busy timeout in milliseconds
	ForeignKeys     bool   `json:"foreignKeys" yaml:"foreignKeys"`         // Enable foreign key constraints

	// Maintenance settings
	VacuumInterval  time.Duration `json:"vacuumInterval" yaml:"vacuumInterval"`   // Interval for running VACUUM
	AnalyzeInterval time.Duration `json:"analyzeInterval" yaml:"analyzeInterval"` // Interval for running ANALYZE

	// Data retention settings
	RetentionDays int  `json:"retentionDays" yaml:"retentionDays"` // Number of days to retain session data (0 = no cleanup)
	EnableCleanup bool `json:"enableCleanup" yaml:"enableCleanup"` // Whether to enable automatic data cleanup

	// Environment and runtime settings
	Environment string `json:"environment" yaml:"environment"` // Environment (development, production, test)
	LogLevel    string `json:"logLevel" yaml:"logLevel"`       // Log level for database operations
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path:                  "focal.db",
		MaxConnections:        10,
		MaxIdleConns:          5,
		ConnMaxLifetime:       24 * time.Hour,
		ConnMaxIdleTime:       30 * time.Minute,
		ForceSingleConnection: false, // Let the service auto-detect based on journal mode

		AutoMigrate: true,

		JournalMode:     "WAL",
		SynchronousMode: "NORMAL",
		CacheSize:       2000,  // 2MB cache
		BusyTimeout:     30000, // 30 seconds
		ForeignKeys:     true,

		VacuumInterval:  24 * time.Hour,
		AnalyzeInterval: 6 * time.Hour,

		RetentionDays: 365,
		EnableCleanup: true,

		Environment: "production",
		LogLevel:    "info",
	}
}

// DevelopmentConfig returns a configuration optimized for development
func DevelopmentConfig() *Config {
	config := DefaultConfig()
	config.Path = "focal_dev.db"
	config.Environment = "development"
	config.LogLevel = "debug"
	config.RetentionDays = 30
	config.EnableCleanup = false
	return config
}

// TestConfig returns a configuration optimized for testing
func TestConfig() *Config {
	config := DefaultConfig()
	config.Path = ":memory:"
	config.Environment = "test"
	config.LogLevel = "error"
	config.AutoMigrate = true
	config.RetentionDays = 0
	config.EnableCleanup = false
	config.VacuumInterval = 0
	config.AnalyzeInterval = 0

	// In-memory-friendly pragmas. WAL is meaningless without a file.
	config.JournalMode = "MEMORY"
	config.SynchronousMode = "OFF"
	config.CacheSize = 1000
	config.BusyTimeout = 1000

	return config
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if path := os.Getenv("FOCAL_DB_PATH"); path != "" {
		c.Path = path
	}

	if maxConns := os.Getenv("FOCAL_DB_MAX_CONNECTIONS"); maxConns != "" {
		if val, err := strconv.Atoi(maxConns); err == nil && val > 0 {
			c.MaxConnections = val
		}
	}

	if maxIdle := os.Getenv("FOCAL_DB_MAX_IDLE_CONNECTIONS"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil && val > 0 {
			c.MaxIdleConns = val
		}
	}

	if lifetime := os.Getenv("FOCAL_DB_CONN_MAX_LIFETIME"); lifetime != "" {
		if val, err := time.ParseDuration(lifetime); err == nil {
			c.ConnMaxLifetime = val
		}
	}

	if idleTime := os.Getenv("FOCAL_DB_CONN_MAX_IDLE_TIME"); idleTime != "" {
		if val, err := time.ParseDuration(idleTime); err == nil {
			c.ConnMaxIdleTime = val
		}
	}

	if autoMigrate, present := parseBoolEnv("FOCAL_DB_AUTO_MIGRATE"); present {
		c.AutoMigrate = autoMigrate
	}

	if journalMode := os.Getenv("FOCAL_DB_JOURNAL_MODE"); journalMode != "" {
		c.JournalMode = journalMode
	}

	if syncMode := os.Getenv("FOCAL_DB_SYNCHRONOUS_MODE"); syncMode != "" {
		c.SynchronousMode = syncMode
	}

	if cacheSize := os.Getenv("FOCAL_DB_CACHE_SIZE"); cacheSize != "" {
		if val, err := strconv.Atoi(cacheSize); err == nil && val > 0 {
			c.CacheSize = val
		}
	}

	if busyTimeout := os.Getenv("FOCAL_DB_BUSY_TIMEOUT"); busyTimeout != "" {
		if val, err := strconv.Atoi(busyTimeout); err == nil && val >= 0 {
			c.BusyTimeout = val
		}
	}

	if foreignKeys, present := parseBoolEnv("FOCAL_DB_FOREIGN_KEYS"); present {
		c.ForeignKeys = foreignKeys
	}

	if forceSingle, present := parseBoolEnv("FOCAL_DB_FORCE_SINGLE_CONNECTION"); present {
		c.ForceSingleConnection = forceSingle
	}

	if vacuumInterval := os.Getenv("FOCAL_DB_VACUUM_INTERVAL"); vacuumInterval != "" {
		if val, err := time.ParseDuration(vacuumInterval); err == nil {
			c.VacuumInterval = val
		}
	}

	if analyzeInterval := os.Getenv("FOCAL_DB_ANALYZE_INTERVAL"); analyzeInterval != "" {
		if val, err := time.ParseDuration(analyzeInterval); err == nil {
			c.AnalyzeInterval = val
		}
	}

	if retentionDays := os.Getenv("FOCAL_DB_RETENTION_DAYS"); retentionDays != "" {
		if val, err := strconv.Atoi(retentionDays); err == nil && val >= 0 {
			c.RetentionDays = val
		}
	}

	if enableCleanup, present := parseBoolEnv("FOCAL_DB_ENABLE_CLEANUP"); present {
		c.EnableCleanup = enableCleanup
	}

	if environment := os.Getenv("FOCAL_ENVIRONMENT"); environment != "" {
		c.Environment = environment
	}

	if logLevel := os.Getenv("FOCAL_DB_LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}

	return nil
}

// Validate validates the configuration parameters
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	// For file-based databases, ensure the directory exists
	if !c.IsInMemory() {
		dir := filepath.Dir(c.Path)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create database directory %s: %w", dir, err)
				}
			}
		}
	}

	if c.MaxConnections <= 0 {
		return fmt.Errorf("maxConnections must be positive, got %d", c.MaxConnections)
	}

	if c.MaxIdleConns < 0 {
		return fmt.Errorf("maxIdleConns cannot be negative, got %d", c.MaxIdleConns)
	}

	if c.MaxIdleConns > c.MaxConnections {
		return fmt.Errorf("maxIdleConns (%d) cannot be greater than maxConnections (%d)", c.MaxIdleConns, c.MaxConnections)
	}

	if c.ConnMaxLifetime < 0 {
		return fmt.Errorf("connMaxLifetime cannot be negative, got %v", c.ConnMaxLifetime)
	}

	if c.ConnMaxIdleTime < 0 {
		return fmt.Errorf("connMaxIdleTime cannot be negative, got %v", c.ConnMaxIdleTime)
	}

	validJournalModes := []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}
	journalModeValid := false
	for _, validMode := range validJournalModes {
		if strings.EqualFold(c.JournalMode, validMode) {
			journalModeValid = true
			break
		}
	}
	if !journalModeValid {
		return fmt.Errorf("invalid journalMode: %s", c.JournalMode)
	}

	if c.IsInMemory() && strings.EqualFold(c.JournalMode, "WAL") {
		return fmt.Errorf("journalMode cannot be WAL when using in-memory database")
	}

	validSyncModes := map[string]bool{
		"OFF":    true,
		"NORMAL": true,
		"FULL":   true,
		"EXTRA":  true,
	}
	if !validSyncModes[c.SynchronousMode] {
		return fmt.Errorf("invalid synchronousMode: %s", c.SynchronousMode)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("cacheSize must be positive, got %d", c.CacheSize)
	}

	if c.BusyTimeout < 0 {
		return fmt.Errorf("busyTimeout cannot be negative, got %d", c.BusyTimeout)
	}

	if c.VacuumInterval < 0 {
		return fmt.Errorf("vacuumInterval cannot be negative, got %v", c.VacuumInterval)
	}

	if c.AnalyzeInterval < 0 {
		return fmt.Errorf("analyzeInterval cannot be negative, got %v", c.AnalyzeInterval)
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("retentionDays cannot be negative, got %d", c.RetentionDays)
	}

	validEnvironments := map[string]bool{
		"development": true,
		"test":        true,
		"production":  true,
	}
	if !validEnvironments[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid logLevel: %s", c.LogLevel)
	}

	return nil
}

// GetConnectionString builds the SQLite connection string with all options
func (c *Config) GetConnectionString() string {
	values := url.Values{}

	if c.ForeignKeys {
		values.Set("_foreign_keys", "on")
	} else {
		values.Set("_foreign_keys", "off")
	}

	values.Set("_journal_mode", c.JournalMode)
	values.Set("_synchronous", c.SynchronousMode)

	// Negative cache size so SQLite interprets the value as KB
	values.Set("_cache_size", fmt.Sprintf("%d", -c.CacheSize))
	values.Set("_busy_timeout", fmt.Sprintf("%d", c.BusyTimeout))

	// Escape only the characters that would break query string parsing
	path := c.Path
	if strings.ContainsAny(path, "?&") {
		path = strings.ReplaceAll(path, "?", "%3F")
		path = strings.ReplaceAll(path, "&", "%26")
	}

	return path + "?" + values.Encode()
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// IsInMemory returns true if the database is configured to use in-memory storage
func (c *Config) IsInMemory() bool {
	return c.Path == ":memory:"
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsTest returns true if the environment is set to test
func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ConfigForEnvironment returns a configuration optimized for the given environment
func ConfigForEnvironment(env string) *Config {
	switch env {
	case "development":
		return DevelopmentConfig()
	case "test":
		return TestConfig()
	default:
		config := DefaultConfig()
		config.Path = filepath.Join(".", "focal.db")
		return config
	}
}
