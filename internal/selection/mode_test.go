package selection

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"progressive", ModeProgressive},
		{"random", ModeRandom},
		{"all", ModeAll},
		{"", ModeAll},
		{"shuffle", ModeAll},
		{"PROGRESSIVE", ModeAll}, // case-sensitive boundary input
	}

	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeAll, "all"},
		{ModeRandom, "random"},
		{ModeProgressive, "progressive"},
		{Mode(99), "all"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
