package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core"
	"github.com/joseph-ayodele/letters-tracker/internal/core/async"
	"github.com/joseph-ayodele/letters-tracker/internal/core/extract"
	"github.com/joseph-ayodele/letters-tracker/internal/core/ocr"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/ingest"
	"github.com/joseph-ayodele/letters-tracker/internal/metrics"
	repo "github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/server"
	"github.com/joseph-ayodele/letters-tracker/internal/services/export"
	"github.com/joseph-ayodele/letters-tracker/internal/services/notify"
	"github.com/joseph-ayodele/letters-tracker/internal/storage"
)

func main() {
	fs := pflag.NewFlagSet("lettersd", pflag.ExitOnError)
	common.BindFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := common.LoadConfig(fs)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(2)
	}
	logger := common.NewJSONLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("lettersd stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *common.Config, logger *slog.Logger) error {
	db, err := repo.Open(ctx, repo.ConfigFrom(cfg.Database), logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.HealthCheck(ctx, 5*time.Second); err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	engine, err := ocr.NewEngine(cfg.OCR, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	notifier := notify.New(cfg.Notify, reg, logger)

	filesRepo := repo.NewLetterFileRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)

	proc := core.NewProcessor(logger,
		extract.NewOCRAdapter(engine, logger),
		extract.NewRulesExtractor(rules.NewExtractor(logger, rules.WithYearWindow(cfg.Engine.DateYearWindow))),
		filesRepo, jobsRepo,
		core.WithStorage(store),
		core.WithMetrics(m),
		core.WithNotifier(notifier),
	)
	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
		async.WithMetrics(m),
	)
	ingestor := ingest.NewFSIngestor(filesRepo, store, logger, m)

	grpcServer, healthServer := server.NewGRPCServer(proc, logger)

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr: cfg.Server.HTTPAddr,
		Handler: server.NewRouter(server.HTTPDeps{
			Processor: proc,
			Ingestor:  ingestor,
			Queue:     queue,
			Files:     filesRepo,
			Jobs:      jobsRepo,
			Export:    export.NewService(jobsRepo, filesRepo, logger),
			DB:        db,
			Metrics:   m,
			Logger:    logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return err
		}
		g.Go(func() error {
			logger.Info("grpc listening", "addr", cfg.Server.GRPCAddr)
			return grpcServer.Serve(lis)
		})
	}
	if cfg.Server.HTTPAddr != "" {
		g.Go(func() error {
			logger.Info("http listening", "addr", cfg.Server.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	if cfg.Ingest.WatchDir != "" {
		g.Go(func() error {
			return ingest.Watch(gctx, ingest.WatchConfig{
				Roots:       []string{cfg.Ingest.WatchDir},
				InitialScan: true,
				SkipHidden:  true,
				Debounce:    500 * time.Millisecond,
			}, ingestor, queue, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "err", err)
		}
		grpcServer.GracefulStop()
		queue.Shutdown(shutdownCtx)
		return nil
	})

	return g.Wait()
}
