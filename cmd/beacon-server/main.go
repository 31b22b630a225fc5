package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/openbiodata/beacon-api/internal/api"
	"github.com/openbiodata/beacon-api/internal/beacon/catalog"
	"github.com/openbiodata/beacon-api/internal/cache/redisstore"
	"github.com/openbiodata/beacon-api/internal/core/config"
	"github.com/openbiodata/beacon-api/internal/core/health"
	"github.com/openbiodata/beacon-api/internal/core/server"
	"github.com/openbiodata/beacon-api/internal/invalidation/kafkaconsumer"
	"github.com/openbiodata/beacon-api/internal/logger"
	"github.com/openbiodata/beacon-api/internal/service"
	"github.com/openbiodata/beacon-api/internal/service/cached"
	"github.com/openbiodata/beacon-api/internal/service/memory"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "beacon-server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	appLog.Info("starting beacon server",
		"addr", cfg.Addr,
		"beacon_id", cfg.BeaconID,
		"api_version", cfg.APIVersion)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store     *redisstore.Client
		readiness []health.Pinger
	)
	if cfg.RedisAddr != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		s, err := redisstore.New(connectCtx, cfg.RedisAddr)
		cancel()
		if err != nil {
			appLog.Error("redis connect failed", "addr", cfg.RedisAddr, "err", err)
			return 1
		}
		store = s
		defer func() { _ = store.Close() }()
		readiness = append(readiness, store)
		appLog.Info("query cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	registry := service.NewRegistry()
	if cfg.DemoData {
		if err := registerDemoServices(registry, store, cfg, appLog); err != nil {
			appLog.Error("demo data setup failed", "err", err)
			return 1
		}
	}

	if cfg.Invalidation.Enabled && store != nil {
		kcfg := kafkaconsumer.FromEnv()
		kcfg.Brokers = splitCSV(cfg.Invalidation.Brokers)
		kcfg.Topic = cfg.Invalidation.Topic
		kcfg.GroupID = cfg.Invalidation.GroupID

		cons := kafkaconsumer.New(kcfg, appLog, store)
		go func() {
			if err := cons.Start(ctx); err != nil {
				appLog.Error("invalidation consumer exited", "err", err)
			}
		}()
	}

	a := api.New(cfg, appLog, registry)
	router := server.Router(cfg, appLog, a, readiness...)

	if err := server.Run(ctx, cfg, appLog, router); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

// registerDemoServices wires in-memory backends for the entry types the
// demo dataset covers. Analyses, runs and datasets are left unwired to
// exercise the empty-envelope path for unimplemented backends.
func registerDemoServices(registry *service.Registry, store *redisstore.Client, cfg config.Config, appLog *slog.Logger) error {
	wrap := func(tag string, svc service.Service) service.Service {
		if store == nil {
			return svc
		}
		return cached.New(tag, svc, store, cfg.CacheTTL, cfg.CacheOpTimeout, appLog)
	}

	backends := []struct {
		tag     string
		records []any
	}{
		{catalog.TagIndividual, memory.DemoIndividuals()},
		{catalog.TagBiosample, memory.DemoBiosamples()},
		{catalog.TagGenomicVariation, memory.DemoGenomicVariations()},
		{catalog.TagCohort, memory.DemoCohorts()},
	}
	for _, b := range backends {
		st, err := memory.New(b.records...)
		if err != nil {
			return err
		}
		registry.Register(b.tag, wrap(b.tag, st))
	}

	appLog.Info("demo data services registered", "entry_types", registry.Tags())
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
