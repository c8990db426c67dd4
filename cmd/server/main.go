package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	complianceadapters "shiftwise/internal/compliance/adapters"
	compliancehandler "shiftwise/internal/compliance/handler"
	compliancemetrics "shiftwise/internal/compliance/metrics"
	"shiftwise/internal/compliance/ruleset"
	complianceservice "shiftwise/internal/compliance/service"
	"shiftwise/internal/jwttoken"
	"shiftwise/internal/platform/config"
	"shiftwise/internal/platform/httpserver"
	"shiftwise/internal/platform/logger"
	"shiftwise/internal/platform/redisclient"
	tenanthandler "shiftwise/internal/tenant/handler"
	tenantservice "shiftwise/internal/tenant/service"
	tenantstore "shiftwise/internal/tenant/store"
	timeentryhandler "shiftwise/internal/timeentry/handler"
	timeentryservice "shiftwise/internal/timeentry/service"
	timeentrystore "shiftwise/internal/timeentry/store"
	"shiftwise/pkg/platform/audit/publisher"
	auditmemory "shiftwise/pkg/platform/audit/store/memory"
	"shiftwise/pkg/platform/middleware/admin"
	"shiftwise/pkg/platform/middleware/auth"
	"shiftwise/pkg/platform/middleware/metadata"
	"shiftwise/pkg/platform/middleware/request"
	"shiftwise/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence: Postgres when configured, in-memory otherwise.
	var (
		db          *sql.DB
		tenantStore tenantservice.Store
		entryStore  timeentryservice.Store
	)
	if cfg.Database.URL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		tenantStore = tenantstore.NewPostgres(db)
		entryStore = timeentrystore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		tenantStore = tenantstore.NewInMemory()
		entryStore = timeentrystore.NewInMemory()
		log.Info("using in-memory stores")
	}

	redisClient, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var cacheBackend redis.UniversalClient
	if redisClient != nil {
		defer redisClient.Close()
		cacheBackend = redisClient.Client
		log.Info("rule set cache enabled", "ttl", cfg.RuleSetCacheTTL)
	}

	// Audit pipeline: local store always, Kafka fan-out when configured.
	auditOpts := []publisher.Option{
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(1024),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := publisher.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer sink.Close()
		auditOpts = append(auditOpts, publisher.WithSink(sink))
		log.Info("audit kafka sink enabled", "topic", cfg.Kafka.Topic)
	}
	auditPub := publisher.NewPublisher(auditmemory.NewInMemoryStore(), auditOpts...)
	defer auditPub.Close()

	ruleSets := ruleset.NewDefaultRegistry()
	complianceMetrics := compliancemetrics.New()

	ruleSetNames := ruleset.NewCachedNameSource(
		tenantservice.NewRuleSetSource(tenantStore),
		cacheBackend, cfg.RuleSetCacheTTL,
		ruleset.WithCacheLogger(log),
		ruleset.WithCacheMetrics(complianceMetrics),
	)
	tenantSvc := tenantservice.New(tenantStore, ruleSets,
		tenantservice.WithLogger(log),
		tenantservice.WithAuditPublisher(auditPub),
		tenantservice.WithCacheInvalidator(ruleSetNames),
	)

	entrySvc, err := timeentryservice.New(entryStore,
		timeentryservice.WithLogger(log),
		timeentryservice.WithAuditPublisher(auditPub),
	)
	if err != nil {
		return err
	}

	complianceSvc := complianceservice.New(
		complianceadapters.NewTimeEntrySource(entryStore),
		ruleSetNames,
		ruleSets,
		complianceservice.WithLogger(log),
		complianceservice.WithAuditPublisher(auditPub),
		complianceservice.WithMetrics(complianceMetrics),
	)

	jwtSvc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "shiftwise", "shiftwise-api")

	router := chi.NewRouter()
	router.Use(request.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc, log, auth.WithAuditEmitter(auditPub)))
		timeentryhandler.New(entrySvc, log).Register(r)
		compliancehandler.New(complianceSvc, log).Register(r)
	})

	if cfg.Server.AdminToken != "" {
		router.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminToken(cfg.Server.AdminToken, log, admin.WithAuditEmitter(auditPub)))
			tenanthandler.New(tenantSvc, log).Register(r)
		})
	} else {
		log.Warn("admin token not configured, tenant admin endpoints disabled")
	}

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting shiftwise", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
