package repl

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantCmd  string
		wantArgs string
	}{
		{"list", "list", ""},
		{"LIST", "list", ""},
		{"list pending desc", "list", "pending desc"},
		{"show 42", "show", "42"},
		{"snooze   30", "snooze", "30"},
		{"add", "add", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, args := parseCommand(tt.input)
			if cmd != tt.wantCmd || args != tt.wantArgs {
				t.Errorf("parseCommand(%q) = (%q, %q), want (%q, %q)",
					tt.input, cmd, args, tt.wantCmd, tt.wantArgs)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		want    int64
		wantErr bool
	}{
		{"plain id", "42", 42, false},
		{"padded id", "  7  ", 7, false},
		{"empty", "", 0, true},
		{"not a number", "abc", 0, true},
		{"negative", "-3", 0, true},
		{"zero", "0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.args, "show")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseID(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
