// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"career-workers/internal/catalog"
	"career-workers/internal/common/aws"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/observability"
	"career-workers/internal/quizbank"
	"career-workers/internal/results"
	"career-workers/pkg/registry"

	bsp "career-workers/internal/workers/assessment/build-student-profile"
	mc "career-workers/internal/workers/assessment/match-careers"
	srq "career-workers/internal/workers/quiz/score-reality-quiz"
)

const activityRegistryPath = "configs/activity-registry.json"

// retryWithBackoff attempts to execute a function with exponential backoff
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
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)

	ctx := context.Background()
	var checks []readinessCheck

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: 10,
			BaseDelay:  2 * time.Second,
			MaxDelay:   30 * time.Second,
		},
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")
	checks = append(checks, readinessCheck{"zeebe", zeebe.HealthCheck})

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	if err := pg.Migrate(ctx); err != nil {
		zapLog.Fatal("postgres migration failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")
	checks = append(checks, readinessCheck{"postgres", pg.Ping})

	// --- Career catalog ---
	var repo catalog.Repository
	switch cfg.Catalog.Source {
	case config.CatalogSourceElasticsearch:
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		if err := esClient.EnsureIndex(ctx, cfg.Catalog.Index, database.CareerIndexMapping); err != nil {
			zapLog.Fatal("elasticsearch index setup failed", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully", zap.String("index", cfg.Catalog.Index))
		checks = append(checks, readinessCheck{"elasticsearch", esClient.Ping})
		repo = catalog.NewElasticsearchRepository(esClient.Client, cfg.Catalog.Index, log)
	default:
		repo = catalog.NewPostgresRepository(pg.DB, log)
	}

	if cfg.Catalog.CacheTTL > 0 {
		rdb := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully", zap.Duration("cacheTTL", cfg.Catalog.CacheDuration()))
		checks = append(checks, readinessCheck{"redis", rdb.Ping})
		cached := catalog.NewCachedRepository(repo, rdb.Client, cfg.Catalog.CacheDuration(), log)
		// Listings cached by a previous deployment may come from another source or index.
		if err := cached.Invalidate(ctx); err != nil {
			zapLog.Warn("catalog cache invalidation failed", zap.Error(err))
		}
		repo = cached
	}

	// --- Quiz bank ---
	bank, err := quizbank.Embedded()
	if err != nil {
		zapLog.Fatal("embedded quiz definitions invalid", zap.Error(err))
	}
	if dir := cfg.Quizzes.DefinitionsDir; dir != "" {
		overrides, err := quizbank.LoadDir(dir)
		if err != nil {
			zapLog.Fatal("quiz definitions invalid", zap.String("dir", dir), zap.Error(err))
		}
		bank = bank.Merge(overrides)
	}
	zapLog.Info("Quiz bank loaded", zap.Int("quizzes", bank.Len()))

	// --- Results ---
	store := results.NewStore(pg.DB, log)

	var notifier results.Notifier = results.NewLogNotifier(log)
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region, cfg.Notifications.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		notifier = results.NewPublishingNotifier(snsClient, log)
		zapLog.Info("SNS notifications enabled", zap.String("topic", cfg.Notifications.SNS.TopicARN))
	}

	// --- Workers ---
	activities, err := registry.LoadRegistry(activityRegistryPath)
	if err != nil {
		zapLog.Warn("activity registry unavailable", zap.String("path", activityRegistryPath), zap.Error(err))
		activities = &registry.ActivityRegistry{}
	}

	var workers []*camunda.Worker
	start := func(taskType string, handler camunda.JobHandler) {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		if _, ok := activities.Find(taskType); !ok {
			zapLog.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, obs, log))
	}

	start(bsp.TaskType, bsp.NewHandler(bsp.LoadConfig(cfg), log))
	start(mc.TaskType, mc.NewHandler(mc.LoadConfig(cfg), repo, store, log))
	quizHandler := srq.NewHandler(srq.LoadConfig(cfg), bank, store, notifier, log)
	start(srq.TaskType, quizHandler)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		failures := map[string]string{}
		for _, c := range checks {
			if err := c.check(checkCtx); err != nil {
				status = http.StatusServiceUnavailable
				failures[c.name] = err.Error()
			}
		}
		body := map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		}
		if len(failures) > 0 {
			body["status"] = "not_ready"
			body["failures"] = failures
		}
		writeStatus(w, status, body)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	quizHandler.Wait()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping meter provider", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
