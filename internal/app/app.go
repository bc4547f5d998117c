package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/viant/vehiclepos/engine"
	"github.com/viant/vehiclepos/internal/config"
	"github.com/viant/vehiclepos/position"
	"github.com/viant/vehiclepos/query"
	"github.com/viant/vehiclepos/report"
	"github.com/viant/vehiclepos/search"
	"github.com/viant/vehiclepos/source"
)

// Run loads the positions source, answers every query point and reports the
// results to stdout. Diagnostics go to stderr.
func Run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg, stderr)

	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	var timing search.Timing
	started := time.Now()
	data, err := loader.Load(ctx, cfg.DataFile)
	if err != nil {
		return err
	}
	records, err := position.Decode(data)
	timing.Read = time.Since(started)
	logger.LogDecode(ctx, cfg.DataFile, len(data), len(records), timing.Read, err)
	if err != nil {
		return fmt.Errorf("app: decode %s: %w", cfg.DataFile, err)
	}

	if cfg.SQLiteDSN != "" {
		if err := persist(ctx, cfg.SQLiteDSN, records); err != nil {
			return err
		}
	}

	queries, err := loadQueries(cfg)
	if err != nil {
		return err
	}

	idx, err := search.NewIndex(cfg.Index)
	if err != nil {
		return err
	}
	if err := idx.Build(records); err != nil {
		return err
	}
	runner := search.NewRunner(idx,
		search.WithParallelism(cfg.Parallelism),
		search.WithLogger(logger),
	)

	started = time.Now()
	results, err := runner.Run(ctx, queries)
	timing.Search = time.Since(started)
	if err != nil {
		return err
	}

	switch cfg.OutputFormat {
	case "json":
		err = report.WriteJSON(stdout, results)
	default:
		err = report.WriteText(stdout, results, timing)
	}
	if err != nil {
		return err
	}

	if cfg.MQTTBroker != "" {
		client, err := report.Connect(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		if err := report.NewPublisher(client, cfg.MQTTTopic).Publish(results); err != nil {
			return err
		}
		logger.InfoContext(ctx, "results published", "broker", cfg.MQTTBroker, "topic", cfg.MQTTTopic, "count", len(results))
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) *search.Logger {
	if cfg.LogFormat == "json" {
		return search.NewJSONLogger(w, cfg.LogLevel)
	}
	return search.NewTextLogger(w, cfg.LogLevel)
}

func newLoader(cfg *config.Config) (*source.Loader, error) {
	if cfg.S3Endpoint == "" {
		return source.New(), nil
	}
	client, err := source.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Secure)
	if err != nil {
		return nil, err
	}
	return source.New(source.WithS3Client(client)), nil
}

func loadQueries(cfg *config.Config) ([]position.Query, error) {
	format := query.Format(cfg.QueryFormat)
	if format == query.FormatDefault || format == "" {
		return query.Defaults(), nil
	}
	f, err := os.Open(cfg.QueryFile)
	if err != nil {
		return nil, fmt.Errorf("app: open queries: %w", err)
	}
	defer f.Close()
	return query.Parse(f, format)
}

func persist(ctx context.Context, dsn string, records []position.Record) error {
	db, err := engine.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := position.NewSQLiteStore(db)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, records); err != nil {
		return fmt.Errorf("app: persist to %s: %w", dsn, err)
	}
	return nil
}
