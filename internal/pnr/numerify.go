package pnr

import "strings"

// digitPlaceholder marks a position Numerify fills with a random digit.
const digitPlaceholder = '#'

// Numerify replaces every '#' in pattern with an independently drawn
// decimal digit. All other characters pass through unchanged.
func Numerify(src Source, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for _, r := range pattern {
		if r == digitPlaceholder {
			b.WriteByte(byte('0' + src.Intn(10)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
