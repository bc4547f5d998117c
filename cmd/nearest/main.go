// Command nearest finds, for each query point, the closest vehicle position
// recorded in a binary positions file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/viant/vehiclepos/internal/app"
	"github.com/viant/vehiclepos/internal/config"
)

func main() {
	configPath := flag.String("config", "", "KEY=VALUE config file")
	overrides := map[string]*string{
		"DATA_FILE":     flag.String("data", "", "positions file path or s3://bucket/key"),
		"QUERY_FILE":    flag.String("queries", "", "query points file"),
		"QUERY_FORMAT":  flag.String("format", "", "query format: default, csv or nmea"),
		"INDEX":         flag.String("index", "", "index kind: halving or brute"),
		"OUTPUT_FORMAT": flag.String("output", "", "output format: text or json"),
		"LOG_LEVEL":     flag.String("log-level", "", "log level: debug, info, warn or error"),
		"SQLITE_DSN":    flag.String("sqlite", "", "persist decoded records to this SQLite database"),
		"MQTT_BROKER":   flag.String("mqtt", "", "publish results to this MQTT broker"),
	}
	parallel := flag.Int("parallel", -1, "queries in flight (0 = GOMAXPROCS)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, overrides, *parallel)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path string, overrides map[string]*string, parallel int) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	for key, value := range overrides {
		if *value == "" {
			continue
		}
		if err := cfg.Set(key, *value); err != nil {
			return nil, fmt.Errorf("flag: %w", err)
		}
	}
	if parallel >= 0 {
		if err := cfg.Set("PARALLELISM", strconv.Itoa(parallel)); err != nil {
			return nil, err
		}
	}
	// validated once, after env and flags had their say
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
