package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"NanoTracker/internal/chart"
	"NanoTracker/internal/collector"
	"NanoTracker/internal/config"
	"NanoTracker/internal/notifier"
	"NanoTracker/internal/recorder"
	"NanoTracker/internal/scheduler"
	"NanoTracker/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] NanoTracker starting...")

	// Load .env if present, then config
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	periodStart, err := cfg.PeriodStart()
	if err != nil {
		log.Fatalf("[FATAL] tracking period: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Tracker.StateFile), 0755); err != nil {
		log.Fatalf("[FATAL] create data dir: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher = collector.NewNanoFetcher(cfg.Nano.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s, users: %v", fetcher.Name(), cfg.Nano.Users)

	// Init tracker store
	store, err := tracker.NewStore(cfg.Tracker.StateFile, periodStart)
	if err != nil {
		log.Fatalf("[FATAL] init tracker store: %v", err)
	}

	// Init collector
	col := collector.NewCollector(fetcher, store, cfg.Nano.Users, cfg.Tracking.PaceThreshold)

	// Init chart composer
	composer := chart.NewComposer(periodStart, cfg.Tracking.Days, cfg.Tracking.Goal,
		cfg.Chart.Width, cfg.Chart.Height)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, store, composer, tn, rec, cfg.Chart.OutputPath)
	if err := sched.RegisterAll(cfg.Schedule.FrequentCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing tick now")
		go sched.RunTickNow()
	}

	log.Println("[INFO] NanoTracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	// Stop ticks before the final dump so no in-flight tick mutates state after it.
	sched.Stop()
	if err := store.Save(); err != nil {
		log.Printf("[ERROR] final state save: %v", err)
	}
	log.Println("[INFO] NanoTracker stopped")
}
