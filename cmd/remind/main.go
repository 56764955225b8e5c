// Command remind is the interactive reminder manager: a readline
// command loop for managing reminders, with the background check loop
// running in the same process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/reminderd/internal/config"
	"github.com/notexe/reminderd/internal/notify"
	"github.com/notexe/reminderd/internal/reminder"
	"github.com/notexe/reminderd/internal/repl"
	"github.com/notexe/reminderd/internal/scheduler"
	"github.com/notexe/reminderd/internal/snooze"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	dbPath := flag.String("db", "", "Path to reminder database (overrides config)")
	interval := flag.Int("interval", 0, "Seconds between reminder checks (overrides config)")
	notifyMethod := flag.String("notify", "", "Notification method: auto, desktop, console, telegram (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
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
	if *noColor {
		cfg.UI.ColoredOutput = false
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

	sink, err := notify.NewSink(&cfg.Notify, cfg.UI.ColoredOutput, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating notification sink: %v\n", err)
		os.Exit(1)
	}

	coordinator := snooze.NewCoordinator(store)
	sched := scheduler.New(store, sink, cfg.Scheduler.IntervalDuration(), coordinator.MarkNotifying)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scheduler.CheckOnStart {
		if err := sched.CheckNow(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: initial reminder check failed: %v\n", err)
		}
	}

	if err := sched.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting scheduler: %v\n", err)
		os.Exit(1)
	}
	defer sched.Shutdown()

	replInstance, err := repl.NewREPL(store, coordinator, sched, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Shutting down...")
		cancel()

		sched.Shutdown()
		store.Close()

		os.Exit(0)
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
