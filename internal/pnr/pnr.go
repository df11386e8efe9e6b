// Package pnr generates synthetic Swedish identification numbers:
// personnummer, organisationsnummer and VAT ids. Numbers are syntactically
// valid and carry a correct Luhn check digit but are not checked against
// any registry.
package pnr

import (
	"errors"
	"time"
)

// ErrInvalidArgument is returned when a caller supplies a value outside the
// permitted domain, such as an unknown gender or corporate type.
var ErrInvalidArgument = errors.New("invalid argument")

// Separator sits between the date (or corporate) segment and the last four
// digits.
const Separator = "-"

// Gender selects the parity of the ninth digit of a personnummer.
type Gender string

const (
	Female Gender = "F"
	Male   Gender = "M"
)

// Kind identifies which kind of number was generated.
type Kind string

const (
	KindPersonnummer        Kind = "personnummer"
	KindOrganisationsnummer Kind = "organisationsnummer"
	KindVAT                 Kind = "vat"
)

// Parts is a number before its check digit is appended.
type Parts struct {
	Prefix string
	Suffix string
}

// Number is a generated identifier together with the inputs that shaped it.
type Number struct {
	Kind          Kind      `json:"kind" yaml:"kind"`
	Value         string    `json:"value" yaml:"value"`
	Gender        Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
	CorporateType string    `json:"corporate_type,omitempty" yaml:"corporate_type,omitempty"`
	BirthDate     time.Time `json:"birth_date,omitzero" yaml:"birth_date,omitempty"`
}

// Request holds the parameters of a single SSN call. A non-empty
// CorporateType selects an organisationsnummer; otherwise a personnummer is
// generated from the age range and gender.
type Request struct {
	MinAge        int
	MaxAge        int
	Gender        Gender
	CorporateType string
}

// DefaultRequest returns the parameters used when a caller supplies none.
func DefaultRequest() Request {
	return Request{MinAge: 18, MaxAge: 90}
}

// PersonalRequest holds the parameters of a personnummer.
type PersonalRequest struct {
	MinAge int    `validate:"gte=0"`
	MaxAge int    `validate:"gtefield=MinAge"`
	Gender Gender `validate:"omitempty,oneof=F M"`
}

// Personal extracts the personnummer parameters of r.
func (r Request) Personal() PersonalRequest {
	return PersonalRequest{MinAge: r.MinAge, MaxAge: r.MaxAge, Gender: r.Gender}
}
