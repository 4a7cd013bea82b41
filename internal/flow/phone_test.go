package flow

import "testing"

func TestValidPhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"bare_digits", "79991234567", true},
		{"plus_prefix", "+7 999 123-45-67", true},
		{"min_length", "1234567890", true},
		{"max_length", "123456789012345", true},
		{"too_short", "123456789", false},
		{"too_long", "1234567890123456", false},
		{"letters_only", "not a phone", false},
		{"empty", "", false},
		{"digits_with_noise", "tel: 8 (999) 123-45-67", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidPhone(tc.input); got != tc.want {
				t.Fatalf("ValidPhone(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
