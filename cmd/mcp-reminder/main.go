// Command mcp-reminder provides an MCP server for reminder management.
//
// This server provides tools for creating, listing, snoozing, and
// managing reminders stored in a SQLite database. With the scheduler
// enabled in the configuration, the background check loop runs inside
// the server process and due reminders fire while it is up.
//
// Usage:
//
//	./mcp-reminder          # Start MCP server (stdio)
//	./mcp-reminder --help   # Show help
//
// Environment:
//
//	REMINDERD_DB_PATH  Path to SQLite database (default: ~/.reminderd/reminders.db)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/reminderd/internal/config"
	"github.com/notexe/reminderd/internal/notify"
	"github.com/notexe/reminderd/internal/reminder"
	"github.com/notexe/reminderd/internal/scheduler"
	"github.com/notexe/reminderd/internal/snooze"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureStoreDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	store, err := reminder.NewStore(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Stdout carries the MCP protocol, so the console fallback banner
	// goes to stderr.
	sink, err := notify.NewSink(&cfg.Notify, false, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create notification sink: %v\n", err)
		os.Exit(1)
	}

	coordinator := snooze.NewCoordinator(store)
	sched := scheduler.New(store, sink, cfg.Scheduler.IntervalDuration(), coordinator.MarkNotifying)

	if cfg.Scheduler.Enabled {
		if cfg.Scheduler.CheckOnStart {
			if err := sched.CheckNow(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: initial reminder check failed: %v\n", err)
			}
		}
		if err := sched.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start scheduler: %v\n", err)
			os.Exit(1)
		}
		defer sched.Shutdown()
	}

	s := reminder.NewServer(store, coordinator, sched.CheckNow)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder          Start MCP server (communicates via stdio)
    mcp-reminder --help   Show this help

ENVIRONMENT:
    REMINDERD_DB_PATH  Path to SQLite database file
                       Default: ~/.reminderd/reminders.db

CONFIG:
    ~/.reminderd/config.yaml   Set scheduler.enabled: true to run the
                               background check loop inside the server.

TOOLS:
    add_reminder          Add a new reminder (title, due_date, description)
    list_reminders        List reminders (optional status filter and sort order)
    get_due_reminders     Get pending reminders whose due time has passed
    update_reminder       Update reminder fields (title, description, due_date)
    complete_reminder     Mark a reminder as completed
    cancel_reminder       Cancel a reminder
    delete_reminder       Delete a reminder permanently
    snooze_reminder       Postpone the currently-notifying reminder
    dismiss_notification  Discard the currently-notifying reminder
    active_notification   Show the currently-notifying reminder
    check_reminders       Run one reminder sweep now

CONFIGURATION:
    Add to your MCP client settings:
    {
      "mcpServers": {
        "reminder": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
