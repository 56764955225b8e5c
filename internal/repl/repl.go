// Package repl implements the interactive command loop: reminder CRUD,
// snooze actions and manual sweeps, on top of readline.
package repl

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"

	"github.com/notexe/reminderd/internal/config"
	"github.com/notexe/reminderd/internal/reminder"
	"github.com/notexe/reminderd/internal/scheduler"
	"github.com/notexe/reminderd/internal/snooze"
	"github.com/notexe/reminderd/internal/ui"
)

type REPL struct {
	store       *reminder.Store
	coordinator *snooze.Coordinator
	scheduler   *scheduler.Scheduler
	config      *config.Config
	rl          *readline.Instance
	formatter   *ui.Formatter
}

func NewREPL(store *reminder.Store, coordinator *snooze.Coordinator, sched *scheduler.Scheduler, cfg *config.Config) (*REPL, error) {
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	rl, err := setupReadline(formatter.FormatPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	return &REPL{
		store:       store,
		coordinator: coordinator,
		scheduler:   sched,
		config:      cfg,
		rl:          rl,
		formatter:   formatter,
	}, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome()

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		command, args := parseCommand(input)
		if err := r.handleCommand(ctx, command, args); err != nil {
			r.displayError(err)
		}

		if command == "quit" || command == "exit" || command == "q" {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	r.rl.Close()
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "add", "a":
		return r.handleAdd()

	case "list", "ls", "l":
		return r.handleList(args)

	case "show":
		return r.handleShow(args)

	case "edit", "e":
		return r.handleEdit(args)

	case "done":
		return r.handleSetStatus(args, reminder.StatusCompleted)

	case "cancel":
		return r.handleSetStatus(args, reminder.StatusCancelled)

	case "rm", "del":
		return r.handleDelete(args)

	case "snooze", "z":
		return r.handleSnooze(args)

	case "dismiss":
		return r.handleDismiss()

	case "active":
		return r.handleActive()

	case "check":
		return r.handleCheck(ctx)

	case "help", "h":
		r.displayHelp()
		return nil

	case "quit", "exit", "q":
		fmt.Println("\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type help for available commands)", command)
	}
}
