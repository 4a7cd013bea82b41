package flow

import "regexp"

var nonDigitRe = regexp.MustCompile(`\D`)

// ValidPhone reports whether the input contains 10 to 15 digits once
// every non-digit rune is stripped. Formatting is up to the client;
// "+7 (999) 123-45-67" and "79991234567" are both fine.
func ValidPhone(raw string) bool {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	return len(digits) >= 10 && len(digits) <= 15
}
