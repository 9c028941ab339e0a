package seat

import (
	"strconv"
	"strings"

	"sahelbus/internal/domain"
)

// Labels are 1-based row number + column letter, "1A" style, matching
// what is printed above the seats in the fleet. Single-letter columns
// only: no minibus in service is anywhere near 26 seats wide.
const maxColumns = 26

// Encode turns a zero-based (row, column) position into a seat label.
func Encode(row, column int) (string, error) {
	if row < 0 || column < 0 || column >= maxColumns {
		return "", domain.OutOfRangeError{Row: row, Column: column}
	}
	return strconv.Itoa(row+1) + string(rune('A'+column)), nil
}

// Decode parses a seat label back into its zero-based (row, column)
// position. The inverse of Encode for every label Encode produces.
func Decode(label string) (row, column int, err error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if len(s) < 2 {
		return 0, 0, domain.MalformedLabelError{Label: label}
	}

	letter := s[len(s)-1]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, domain.MalformedLabelError{Label: label}
	}

	// Digits only: Atoi alone would also take a leading sign.
	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, domain.MalformedLabelError{Label: label}
		}
	}
	n, convErr := strconv.Atoi(digits)
	if convErr != nil || n < 1 {
		return 0, 0, domain.MalformedLabelError{Label: label}
	}

	return n - 1, int(letter - 'A'), nil
}

// Normalize maps user input to canonical label form ("3a " -> "3A"),
// rejecting anything Decode would reject.
func Normalize(label string) (string, error) {
	row, column, err := Decode(label)
	if err != nil {
		return "", err
	}
	return Encode(row, column)
}
