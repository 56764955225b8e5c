package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/notexe/reminderd/internal/reminder"
)

func (r *REPL) handleAdd() error {
	title, ok := r.promptField("title", "")
	if !ok {
		r.displaySystem("Add cancelled.")
		return nil
	}

	due, ok := r.promptField("due (2025-01-15 09:00)", "")
	if !ok {
		r.displaySystem("Add cancelled.")
		return nil
	}

	description, ok := r.promptField("description (optional)", "")
	if !ok {
		r.displaySystem("Add cancelled.")
		return nil
	}

	dueAt, err := reminder.ParseDueTime(due)
	if err != nil {
		return err
	}

	id, err := r.store.Add(title, description, dueAt)
	if err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Reminder %d added.", id))
	return nil
}

func (r *REPL) handleList(args string) error {
	fields := strings.Fields(args)
	if len(fields) > 2 {
		return fmt.Errorf("usage: list [all|pending|completed|overdue|cancelled] [asc|desc]")
	}

	filterArg, orderArg := "", ""
	if len(fields) > 0 {
		filterArg = fields[0]
	}
	if len(fields) > 1 {
		orderArg = fields[1]
	}

	filter, err := reminder.ParseFilter(filterArg)
	if err != nil {
		return err
	}
	order, err := reminder.ParseSortOrder(orderArg)
	if err != nil {
		return err
	}

	reminders, err := r.store.List(filter, order)
	if err != nil {
		return err
	}

	r.displayReminderList(reminders)
	return nil
}

func (r *REPL) handleShow(args string) error {
	id, err := parseID(args, "show")
	if err != nil {
		return err
	}

	rem, err := r.store.Get(id)
	if err != nil {
		return err
	}

	r.displayReminderDetail(rem)
	return nil
}

func (r *REPL) handleEdit(args string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return err
	}

	current, err := r.store.Get(id)
	if err != nil {
		return err
	}

	title, ok := r.promptField("title", current.Title)
	if !ok {
		r.displaySystem("Edit cancelled.")
		return nil
	}

	due, ok := r.promptField("due", current.DueAt.Local().Format("2006-01-02 15:04"))
	if !ok {
		r.displaySystem("Edit cancelled.")
		return nil
	}

	// Descriptions can span lines after a snooze audit note, which a
	// pre-filled single-line buffer would mangle; blank keeps the
	// current text instead.
	description, ok := r.promptField("description (blank keeps current)", "")
	if !ok {
		r.displaySystem("Edit cancelled.")
		return nil
	}
	if description == "" {
		description = current.Description
	}

	dueAt, err := reminder.ParseDueTime(due)
	if err != nil {
		return err
	}

	if err := r.store.Update(id, title, description, dueAt); err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Reminder %d updated.", id))
	return nil
}

func (r *REPL) handleSetStatus(args string, status reminder.Status) error {
	command := "done"
	if status == reminder.StatusCancelled {
		command = "cancel"
	}

	id, err := parseID(args, command)
	if err != nil {
		return err
	}

	if err := r.store.SetStatus(id, status); err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Reminder %d marked as %s.", id, strings.ToLower(string(status))))
	return nil
}

func (r *REPL) handleDelete(args string) error {
	id, err := parseID(args, "rm")
	if err != nil {
		return err
	}

	answer, ok := r.promptField(fmt.Sprintf("delete reminder %d? (y/N)", id), "")
	if !ok || (answer != "y" && answer != "yes") {
		r.displaySystem("Delete cancelled.")
		return nil
	}

	if err := r.store.Delete(id); err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Reminder %d deleted.", id))
	return nil
}

func (r *REPL) handleSnooze(args string) error {
	minutes := r.config.Snooze.DefaultMinutes()
	if args != "" {
		m, err := strconv.Atoi(args)
		if err != nil {
			return fmt.Errorf("invalid minutes: %s (usage: snooze [minutes])", args)
		}
		minutes = m
	}

	snoozed, err := r.coordinator.Snooze(minutes)
	if err != nil {
		return err
	}

	r.displaySystem(fmt.Sprintf("Reminder %d snoozed for %d minutes (due %s).",
		snoozed.ID, minutes, snoozed.DueAt.Local().Format("15:04")))
	return nil
}

func (r *REPL) handleDismiss() error {
	id, ok := r.coordinator.Active()
	if !ok {
		r.displayInfo("No active notification.")
		return nil
	}

	r.coordinator.Clear()
	r.displaySystem(fmt.Sprintf("Notification for reminder %d dismissed.", id))
	return nil
}

func (r *REPL) handleActive() error {
	id, ok := r.coordinator.Active()
	if !ok {
		r.displayInfo("No active notification.")
		return nil
	}

	rem, err := r.store.Get(id)
	if err != nil {
		return err
	}

	r.displayReminderDetail(rem)
	r.displayInfo("Type snooze [minutes] to postpone, or dismiss to discard.")
	return nil
}

func (r *REPL) handleCheck(ctx context.Context) error {
	if err := r.scheduler.CheckNow(ctx); err != nil {
		return err
	}

	r.displaySystem("Reminder sweep completed.")
	return nil
}

func parseID(args, command string) (int64, error) {
	arg := strings.TrimSpace(args)
	if arg == "" {
		return 0, fmt.Errorf("usage: %s <id>", command)
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid reminder id: %s", arg)
	}
	return id, nil
}
