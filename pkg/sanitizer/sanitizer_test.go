package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"already clean", "Hanoi", "Hanoi"},
		{"leading and trailing", "  Saigon  ", "Saigon"},
		{"internal run collapsed", "Sleeper   upper\tdeck", "Sleeper upper deck"},
		{"newlines collapsed", "VIP\n01", "VIP 01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
