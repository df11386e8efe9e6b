package pnr

import (
	"fmt"
	"strings"
)

// Checksum returns the Luhn check digit that makes partial followed by the
// digit a valid Luhn sequence.
func Checksum(partial string) (int, error) {
	if partial == "" || !isDigits(partial) {
		return 0, fmt.Errorf("%w: checksum input %q is not a digit string", ErrInvalidArgument, partial)
	}

	// a placeholder 0 puts the doubled positions where the real check
	// digit will sit
	mod := luhnSum(partial+"0") % 10
	if mod == 0 {
		return 0, nil
	}
	return 10 - mod, nil
}

// Valid reports whether number passes the Luhn check. The separators '-'
// and '+' and spaces are ignored; anything else non-numeric fails.
func Valid(number string) bool {
	digits := stripSeparators(number)
	if len(digits) < 2 || !isDigits(digits) {
		return false
	}
	return luhnSum(digits)%10 == 0
}

// luhnSum sums digits from the right, doubling every second one and
// folding two-digit products (14 -> 1+4).
func luhnSum(digits string) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '+', ' ':
			return -1
		}
		return r
	}, s)
}
