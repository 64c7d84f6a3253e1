// cmd/matcher/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"community-assist/internal/benefits"
	"community-assist/internal/catalog"
	"community-assist/internal/checklist"
	"community-assist/internal/common/config"
	"community-assist/internal/common/database"
	"community-assist/internal/common/logger"
	"community-assist/internal/common/observability"
	"community-assist/internal/matcher"
	"community-assist/internal/models"
)

// retryWithBackoff attempts an operation with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}
		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	profilePath := flag.String("profile", "", "path to a user profile JSON file")
	searchTerm := flag.String("search", "", "optional free-text program search instead of matching")
	metricsAddr := flag.String("metrics-listen", "", "optional address to serve /metrics on while running")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	ctx := context.Background()

	if *searchTerm != "" {
		runSearch(ctx, cfg, log, zapLog, *searchTerm)
		return
	}

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "usage: matcher -profile profile.json [-metrics-listen :9090]")
		os.Exit(2)
	}

	// Redis is an optimization; matching works without it.
	var cache *catalog.SnapshotCache
	if cfg.Database.Redis.Address != "" {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err == nil && rdb.Ping(ctx) == nil {
			cache = catalog.NewSnapshotCache(
				rdb.Client,
				time.Duration(cfg.Catalog.SnapshotCacheTTL)*time.Second,
				log,
			)
			defer rdb.Close()
		} else {
			zapLog.Warn("redis unavailable, loading snapshot from store")
		}
	}

	store := catalog.NewStore(pg.DB, log)
	loader := catalog.NewLoader(store, cache, log)

	snap, err := loader.Load(ctx, cfg.Matcher.FPLYear)
	if err != nil {
		zapLog.Fatal("snapshot load failed", zap.Error(err))
	}

	profile, err := readProfile(*profilePath)
	if err != nil {
		zapLog.Fatal("profile read failed", zap.Error(err))
	}

	m := matcher.New(cfg.Matcher, benefits.Default(), log)
	start := time.Now()
	out, err := m.Match(profile, snap, time.Now())
	status := "ok"
	if err != nil {
		status = "error"
	}
	obs.RecordMatchProcessed(ctx, status)
	obs.RecordMatchDuration(ctx, time.Since(start), status)
	if err != nil {
		zapLog.Fatal("matching failed", zap.Error(err))
	}

	matched := make([]models.Program, 0, len(out.Results))
	byID := make(map[string]models.Program, len(snap.Programs))
	for _, p := range snap.Programs {
		byID[p.ID] = p
	}
	for _, r := range out.Results {
		if p, ok := byID[r.ProgramID]; ok {
			matched = append(matched, p)
		}
	}
	documents := checklist.Consolidate(matched, profile)

	response := struct {
		*models.MatchOutput
		Checklist []checklist.Group `json:"checklist,omitempty"`
	}{out, documents}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		zapLog.Fatal("encode response failed", zap.Error(err))
	}
}

func runSearch(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger, term string) {
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch client failed", zap.Error(err))
	}
	if err := es.Ping(); err != nil {
		zapLog.Fatal("elasticsearch unreachable", zap.Error(err))
	}

	search := catalog.NewSearch(es.Client, cfg.Catalog.SearchIndex, log)
	hits, err := search.SearchPrograms(ctx, term, 20)
	if err != nil {
		zapLog.Fatal("program search failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(hits); err != nil {
		zapLog.Fatal("encode search results failed", zap.Error(err))
	}
}

func readProfile(path string) (*models.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile JSON: %w", err)
	}
	return &profile, nil
}
