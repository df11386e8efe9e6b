package pnr

import (
	"fmt"
	"strconv"
	"time"
)

// Parsed describes an existing ten-digit number.
type Parsed struct {
	Input     string    `json:"input" yaml:"input"`
	Digits    string    `json:"digits" yaml:"digits"`
	Valid     bool      `json:"valid" yaml:"valid"`
	Kind      Kind      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Gender    Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
	BirthDate time.Time `json:"birth_date,omitzero" yaml:"birth_date,omitempty"`
}

// Parse reads a number in the form NNNNNN-NNNN, NNNNNN+NNNN or NNNNNNNNNN.
// A '+' separator marks a person aged 100 or more. now anchors the century
// of the two-digit birth year.
//
// Kind is left empty when the number is neither a corporate number nor a
// real calendar date.
func Parse(s string, now time.Time) (Parsed, error) {
	digits, centenarian, err := splitNumber(s)
	if err != nil {
		return Parsed{}, err
	}

	p := Parsed{
		Input:  s,
		Digits: digits,
		Valid:  luhnSum(digits)%10 == 0,
	}

	month, _ := strconv.Atoi(digits[2:4])
	if month >= 20 {
		p.Kind = KindOrganisationsnummer
		return p, nil
	}

	birth, ok := birthDate(digits[:6], centenarian, now)
	if !ok {
		return p, nil
	}

	p.Kind = KindPersonnummer
	p.BirthDate = birth
	p.Gender = Female
	if (digits[8]-'0')%2 == 1 {
		p.Gender = Male
	}
	return p, nil
}

func splitNumber(s string) (digits string, centenarian bool, err error) {
	switch {
	case len(s) == 10 && isDigits(s):
		return s, false, nil
	case len(s) == 11 && (s[6] == '-' || s[6] == '+') && isDigits(s[:6]) && isDigits(s[7:]):
		return s[:6] + s[7:], s[6] == '+', nil
	}
	return "", false, fmt.Errorf("%w: %q is not a ten digit number", ErrInvalidArgument, s)
}

// birthDate decodes YYMMDD, placing the year in the most recent century
// that keeps the date out of the future.
func birthDate(yymmdd string, centenarian bool, now time.Time) (time.Time, bool) {
	yy, _ := strconv.Atoi(yymmdd[0:2])
	mm, _ := strconv.Atoi(yymmdd[2:4])
	dd, _ := strconv.Atoi(yymmdd[4:6])

	year := now.Year()/100*100 + yy
	if year > now.Year() || year == now.Year() && (mm > int(now.Month()) || mm == int(now.Month()) && dd > now.Day()) {
		year -= 100
	}
	if centenarian {
		year -= 100
	}

	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, now.Location())
	// time.Date normalises 0231 to March; reject it
	if t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, false
	}
	return t, true
}
