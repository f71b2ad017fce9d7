package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devicewatch/internal/detection/application"
	"devicewatch/internal/detection/metrics"
	"devicewatch/internal/detection/notify"
	fsstore "devicewatch/internal/telemetry/infrastructure/fs"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config error: %v", err)
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Printf("metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Printf("metrics listener error: %v", err)
			}
		}()
	}

	notifiers := []notify.Notifier{notify.NewConsoleNotifier(os.Stdout)}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.WebhookURL))
	}

	store := fsstore.NewStore(cfg.BasePath)
	runner := application.NewRunner(store, cfg, notify.NewMultiNotifier(notifiers...), m, logger)

	ctx := context.Background()
	if cfg.DailyAt != "" {
		logger.Printf("scheduling daily run at %s", cfg.DailyAt)
		application.NewScheduler(runner, cfg.DailyAt, logger).Start(ctx)
		return
	}

	day, err := cfg.MonitoringDay()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if _, err := runner.ProcessDay(ctx, day); err != nil {
		logger.Fatalf("process day error: %v", err)
	}
}
