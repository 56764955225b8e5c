// Command reminderd runs the background reminder check loop without an
// interactive front-end: it sweeps the store on the configured
// interval and fires notifications until stopped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/reminderd/internal/config"
	"github.com/notexe/reminderd/internal/notify"
	"github.com/notexe/reminderd/internal/reminder"
	"github.com/notexe/reminderd/internal/scheduler"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	dbPath := flag.String("db", "", "Path to reminder database (overrides config)")
	interval := flag.Int("interval", 0, "Seconds between reminder checks (overrides config)")
	notifyMethod := flag.String("notify", "", "Notification method: auto, desktop, console, telegram (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if *interval > 0 {
		cfg.Scheduler.Interval = *interval
	}
	if *notifyMethod != "" {
		cfg.Notify.Method = *notifyMethod
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureStoreDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing data directory: %v\n", err)
		os.Exit(1)
	}

	store, err := reminder.NewStore(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening reminder database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// The daemon has no foreground layer, so notifications degrade to
	// the console without snooze actions.
	sink, err := notify.NewSink(&cfg.Notify, false, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating notification sink: %v\n", err)
		os.Exit(1)
	}

	sched := scheduler.New(store, sink, cfg.Scheduler.IntervalDuration(), nil)

	if cfg.Scheduler.CheckOnStart {
		if err := sched.CheckNow(context.Background()); err != nil {
			log.Printf("[reminderd] Warning: initial reminder check failed: %v", err)
		}
	}

	if err := sched.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting scheduler: %v\n", err)
		os.Exit(1)
	}

	log.Printf("[reminderd] Watching %s", cfg.Store.Path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("[reminderd] Shutting down...")
	sched.Shutdown()
}
