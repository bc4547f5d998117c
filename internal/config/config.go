package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to config keys to form environment overrides, e.g.
// VEHICLEPOS_DATA_FILE.
const EnvPrefix = "VEHICLEPOS_"

// Config holds all application configuration values.
type Config struct {
	// Input
	DataFile    string
	QueryFile   string
	QueryFormat string // "default", "csv" or "nmea"

	// Search
	Index       string // "halving" or "brute"
	Parallelism int    // 0 selects GOMAXPROCS

	// Output
	OutputFormat string // "text" or "json"
	LogFormat    string // "text" or "json"
	LogLevel     slog.Level

	// Persistence; empty disables it
	SQLiteDSN string

	// MQTT; empty broker disables publishing
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string

	// S3-compatible object store for s3:// data files
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Secure    bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataFile:     "VehiclePositions.dat",
		QueryFormat:  "default",
		Index:        "halving",
		OutputFormat: "text",
		LogFormat:    "text",
		LogLevel:     slog.LevelWarn,
		MQTTTopic:    "vehiclepos/nearest",
		MQTTClientID: "vehiclepos-nearest",
		S3Secure:     true,
	}
}

// Load reads the configuration file on top of Default. The result is not
// validated; callers apply overrides first and then call Validate.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err := cfg.Read(file); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read applies KEY=VALUE lines from r. Blank lines and # comments are
// ignored.
func (c *Config) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Keys lists every key Set understands.
var Keys = []string{
	"DATA_FILE", "QUERY_FILE", "QUERY_FORMAT",
	"INDEX", "PARALLELISM",
	"OUTPUT_FORMAT", "LOG_FORMAT", "LOG_LEVEL",
	"SQLITE_DSN",
	"MQTT_BROKER", "MQTT_TOPIC", "MQTT_CLIENT_ID",
	"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_SECURE",
}

// ApplyEnv overrides values with EnvPrefix+KEY variables found by lookup,
// typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range Keys {
		if value, ok := lookup(EnvPrefix + key); ok {
			if err := c.Set(key, value); err != nil {
				return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
			}
		}
	}
	return nil
}

// Set assigns a single config value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	// Input
	case "DATA_FILE":
		c.DataFile = value
	case "QUERY_FILE":
		c.QueryFile = value
	case "QUERY_FORMAT":
		switch value {
		case "default", "csv", "nmea":
			c.QueryFormat = value
		default:
			return fmt.Errorf("QUERY_FORMAT must be default, csv or nmea, got %q", value)
		}

	// Search
	case "INDEX":
		switch value {
		case "halving", "brute":
			c.Index = value
		default:
			return fmt.Errorf("INDEX must be halving or brute, got %q", value)
		}
	case "PARALLELISM":
		val, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid PARALLELISM %q: %w", value, err)
		}
		if val < 0 {
			return fmt.Errorf("PARALLELISM must be >= 0, got %d", val)
		}
		c.Parallelism = val

	// Output
	case "OUTPUT_FORMAT":
		if value != "text" && value != "json" {
			return fmt.Errorf("OUTPUT_FORMAT must be text or json, got %q", value)
		}
		c.OutputFormat = value
	case "LOG_FORMAT":
		if value != "text" && value != "json" {
			return fmt.Errorf("LOG_FORMAT must be text or json, got %q", value)
		}
		c.LogFormat = value
	case "LOG_LEVEL":
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", value, err)
		}
		c.LogLevel = level

	case "SQLITE_DSN":
		c.SQLiteDSN = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_TOPIC":
		c.MQTTTopic = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value

	// S3
	case "S3_ENDPOINT":
		c.S3Endpoint = value
	case "S3_ACCESS_KEY":
		c.S3AccessKey = value
	case "S3_SECRET_KEY":
		c.S3SecretKey = value
	case "S3_SECURE":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid S3_SECURE %q: %w", value, err)
		}
		c.S3Secure = b

	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("DATA_FILE is required")
	}
	if c.QueryFormat != "default" && c.QueryFormat != "" && c.QueryFile == "" {
		return fmt.Errorf("QUERY_FILE is required for QUERY_FORMAT %s", c.QueryFormat)
	}
	if strings.HasPrefix(c.DataFile, "s3://") && c.S3Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required for %s", c.DataFile)
	}
	if c.MQTTBroker != "" && c.MQTTTopic == "" {
		return fmt.Errorf("MQTT_TOPIC is required when MQTT_BROKER is set")
	}
	return nil
}
