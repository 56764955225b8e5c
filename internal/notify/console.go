package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
)

var (
	bannerBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")). // Coral red
				Bold(true)

	bannerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("222")). // Warm yellow
				Bold(true)

	bannerTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	bannerTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// ConsoleSink prints reminders as a banner on the terminal and rings
// the bell. It is the last resort of the delivery chain and never
// fails, so a reminder is loud somewhere even when every other channel
// is broken.
type ConsoleSink struct {
	w       io.Writer
	colored bool
	bell    bool
}

// NewConsoleSink creates a console sink writing to w.
func NewConsoleSink(w io.Writer, colored bool) *ConsoleSink {
	return &ConsoleSink{w: w, colored: colored, bell: true}
}

// Name returns the sink name.
func (c *ConsoleSink) Name() string {
	return "console"
}

// Notify prints the banner and rings the terminal bell three times.
// It always returns nil.
func (c *ConsoleSink) Notify(_ context.Context, n Notification) error {
	rule := strings.Repeat("=", 60)
	stamp := time.Now().Format("15:04:05")

	if c.colored {
		fmt.Fprintln(c.w)
		fmt.Fprintln(c.w, bannerBorderStyle.Render(rule))
		fmt.Fprintln(c.w, bannerTitleStyle.Render("[!] REMINDER: "+n.Title))
		fmt.Fprintln(c.w, bannerTextStyle.Render(">>> "+n.Message))
		fmt.Fprintln(c.w, bannerTimeStyle.Render("at "+stamp))
		fmt.Fprintln(c.w, bannerBorderStyle.Render(rule))
		fmt.Fprintln(c.w)
	} else {
		fmt.Fprintf(c.w, "\n%s\n[!] REMINDER: %s\n>>> %s\nat %s\n%s\n\n",
			rule, n.Title, n.Message, stamp, rule)
	}

	if c.bell {
		c.ring()
	}
	return nil
}

// ring sounds the system beep three times with short pauses, falling
// back to the terminal bell character when no sound device is usable.
func (c *ConsoleSink) ring() {
	for i := 0; i < 3; i++ {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			fmt.Fprint(c.w, "\a")
		}
		time.Sleep(150 * time.Millisecond)
	}
}
