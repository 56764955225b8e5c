package repl

import (
	"fmt"

	"github.com/notexe/reminderd/internal/reminder"
)

func (r *REPL) displayWelcome() {
	fmt.Print(r.formatter.FormatWelcome(r.config.Store.Path, r.config.Scheduler.IntervalDuration()))
	fmt.Println()
}

func (r *REPL) displayHelp() {
	fmt.Print(r.formatter.FormatHelp(r.config.Snooze.Presets))
	fmt.Println()
}

func (r *REPL) displayError(err error) {
	fmt.Println(r.formatter.FormatError(err))
	fmt.Println()
}

func (r *REPL) displayInfo(msg string) {
	fmt.Println(r.formatter.FormatInfo(msg))
	fmt.Println()
}

func (r *REPL) displaySystem(msg string) {
	fmt.Println(r.formatter.FormatSystem(msg))
	fmt.Println()
}

func (r *REPL) displayReminderList(reminders []reminder.Reminder) {
	fmt.Println(r.formatter.FormatReminderList(reminders))
	fmt.Println()
}

func (r *REPL) displayReminderDetail(rem *reminder.Reminder) {
	fmt.Println(r.formatter.FormatReminderDetail(rem))
	fmt.Println()
}
