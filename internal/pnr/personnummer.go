package pnr

import (
	"fmt"
	"time"
)

// ages are counted in plain 365-day years; leap days drift the birth date
// by a few days at most
const daysPerYear = 365

// birthDateLayout is the YYMMDD prefix of a personnummer.
const birthDateLayout = "060102"

var (
	genders      = []Gender{Female, Male}
	femaleDigits = []int{0, 2, 4, 6, 8}
	maleDigits   = []int{1, 3, 5, 7, 9}
)

// personnummerParts builds the date prefix and serial+gender suffix.
// req must already be validated.
func personnummerParts(src Source, now time.Time, req PersonalRequest) (Parts, Gender, time.Time) {
	gender := req.Gender
	if gender == "" {
		gender = choice(src, genders)
	}

	days := req.MinAge * daysPerYear
	if req.MaxAge > req.MinAge {
		days = randRange(src, req.MinAge*daysPerYear, req.MaxAge*daysPerYear)
	}
	birth := now.AddDate(0, 0, -days)

	var genderDigit int
	if gender == Female {
		genderDigit = choice(src, femaleDigits)
	} else {
		genderDigit = choice(src, maleDigits)
	}
	serial := src.Intn(100)

	return Parts{
		Prefix: birth.Format(birthDateLayout),
		Suffix: fmt.Sprintf("%02d%d", serial, genderDigit),
	}, gender, birth
}
