// Package record defines a generated number the user chose to keep.
package record

import (
	"time"

	"github.com/google/uuid"
	"github.com/zarlcorp/zpnr/internal/pnr"
)

// shortIDLen is how much of the id list views show.
const shortIDLen = 8

// Record is a saved number.
type Record struct {
	ID         string `json:"id" yaml:"id"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
	pnr.Number `yaml:",inline"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// New wraps n in a record with a fresh id.
func New(n pnr.Number, label string, now time.Time) Record {
	return Record{
		ID:        uuid.NewString(),
		Label:     label,
		Number:    n,
		CreatedAt: now,
	}
}

// ShortID returns the id prefix shown in listings.
func (r Record) ShortID() string {
	if len(r.ID) <= shortIDLen {
		return r.ID
	}
	return r.ID[:shortIDLen]
}

// Detail returns a one-line summary of what shaped the number.
func (r Record) Detail() string {
	switch r.Kind {
	case pnr.KindPersonnummer:
		return string(r.Gender) + " " + r.BirthDate.Format(time.DateOnly)
	case pnr.KindOrganisationsnummer:
		return "type " + r.CorporateType
	}
	return ""
}
