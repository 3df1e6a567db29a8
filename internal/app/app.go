package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankrates/internal/adapters/cache"
	"bankrates/internal/adapters/postgres"
	"bankrates/internal/adapters/scraper"
	"bankrates/internal/api"
	"bankrates/internal/bot"
	"bankrates/internal/config"
	"bankrates/internal/metrics"
	"bankrates/internal/platform/db"
	httpserver "bankrates/internal/platform/http"
	"bankrates/internal/rate"
	"bankrates/internal/rate/handler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxHistoryDays = 90

// Run wires the application components, starts the scheduler, the bot and the HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, schema)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	rateRepo := postgres.NewRateRepository(pool)
	if err = rateRepo.EnsureSchema(startupCtx); err != nil {
		logrus.WithError(err).Error("Failed to prepare rates schema")
		return err
	}
	logrus.Info("✅ Rates schema is up to date")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Bank pages client
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	if baseHTTPClient.Timeout <= 0 {
		baseHTTPClient.Timeout = 10 * time.Second
	}
	pageClient := scraper.NewBankPageClient(baseHTTPClient, scraper.Options{
		CurrencyCode:   appCfg.Scraper.CurrencyCode,
		RequestTimeout: time.Duration(appCfg.Scraper.RequestTimeoutSec) * time.Second,
		UserAgent:      appCfg.Scraper.UserAgent,
	}, appMetrics)

	// Export cache
	exportCache, err := cache.NewExportCache(appCfg.Export.CacheMaxItems, time.Duration(appCfg.Export.CacheTTLSeconds)*time.Second)
	if err != nil {
		logrus.WithError(err).Error("Failed to create export cache")
		return err
	}
	defer exportCache.Close()

	// Pipeline
	endpoints := appCfg.Endpoints()
	collector := rate.NewCollector(pageClient, appCfg.Scraper.Workers)
	pipeline := rate.NewPipeline(collector, rateRepo, exportCache, endpoints, rate.Days(appCfg.Analysis.TrendDays), appMetrics)
	logrus.Infof("✅ Watching %d banks", len(endpoints))

	scheduler := rate.NewScheduler(pipeline, appCfg.Scheduler.Interval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Telegram bot
	botAPI, err := tgbotapi.NewBotAPI(appCfg.Bot.Token)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to Telegram")
		return err
	}
	botAPI.Debug = appCfg.Bot.Debug
	logrus.Infof("✅ Authorized on Telegram as %s", botAPI.Self.UserName)

	chatBot := bot.New(botAPI, pipeline, exportCache, bot.Options{
		StatsDays:          appCfg.Analysis.StatsDays,
		TrendDays:          appCfg.Analysis.TrendDays,
		HandlerTimeout:     time.Duration(appCfg.Bot.HandlerTimeoutSeconds) * time.Second,
		PollTimeoutSeconds: appCfg.Bot.UpdateTimeoutSeconds,
	})

	// Handlers and router
	rateHandler := handler.NewRateHandler(rate.NewWindowValidator(appCfg.Analysis.StatsDays, maxHistoryDays), pipeline)
	router := api.NewRouter(rateHandler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Block until context is canceled, then perform graceful shutdown.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return chatBot.Serve(groupCtx)
	})
	group.Go(func() error {
		logrus.Info("Starting http server")
		if serverErr := httpserver.Start(groupCtx, appCfg.HTTPServer, router); serverErr != nil {
			logrus.Errorf("HTTP server error: %v", serverErr)
			return serverErr
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		return err
	}
	logrus.Info("Shutdown complete")
	return nil
}
