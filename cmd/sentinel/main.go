package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PairSentinel/internal/catalog"
	"PairSentinel/internal/collector"
	"PairSentinel/internal/config"
	"PairSentinel/internal/disposal"
	"PairSentinel/internal/feed"
	"PairSentinel/internal/notifier"
	"PairSentinel/internal/recorder"
	"PairSentinel/internal/scheduler"
	"PairSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PairSentinel starting...")

	// Load config
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

	// Stock catalog for code-to-name lookups
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		log.Printf("[WARN] load catalog failed, names fall back to codes: %v", err)
		cat = catalog.Empty()
	} else {
		log.Printf("[INFO] catalog loaded: %d securities", cat.Len())
	}

	// Regulatory feeds and the snapshot service
	feeds := feed.NewClient(cfg.Feeds.TWSEBase, cfg.Feeds.TPExBase, cfg.Proxy)
	svc := disposal.NewService(feeds)

	// Price fetcher
	fetcher := collector.NewFinMindFetcher(cfg.PriceSource.BaseURL, cfg.PriceSource.Token, cfg.Proxy)
	log.Printf("[INFO] price source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	// Group store
	groups, err := store.NewGroupStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] init group store: %v", err)
	}
	defer groups.Close()

	// Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Recorder shares the group store's database file
	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
		defer sr.Close()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, svc, col, groups, cat, tn, rec, cfg.Analysis.PeriodDays)
	if err := sched.RegisterAll(cfg.Schedule.SnapshotCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing snapshot task now")
		go sched.RunSnapshotNow()
	}

	log.Println("[INFO] PairSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PairSentinel stopped")
}
