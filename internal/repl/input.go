package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptField reads one field of the add/edit dialogs. initial, when
// non-empty, pre-fills the input buffer so the user can edit the
// current value in place. Returns false when the user aborted with
// Ctrl+C or Ctrl+D.
func (r *REPL) promptField(label, initial string) (string, bool) {
	r.rl.SetPrompt(r.formatter.FormatFieldPrompt(label))
	defer r.rl.SetPrompt(r.formatter.FormatPrompt())

	var line string
	var err error
	if initial != "" {
		line, err = r.rl.ReadlineWithDefault(initial)
	} else {
		line, err = r.rl.Readline()
	}
	if err != nil {
		return "", false
	}

	return strings.TrimSpace(line), true
}

func parseCommand(input string) (string, string) {
	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return command, args
}

func setupReadline(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
