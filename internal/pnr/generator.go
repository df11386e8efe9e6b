package pnr

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// vatPattern is a Swedish VAT id: "SE" and twelve digits.
const vatPattern = "SE############"

// Generator produces Swedish identification numbers. It holds no mutable
// state of its own; concurrent use is safe when the Source is.
type Generator struct {
	src      Source
	now      func() time.Time
	validate *validator.Validate
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the default crypto-backed source.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithClock sets the time birth dates are counted back from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		src:      CryptoSource(),
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SSN returns a formatted personnummer, or an organisationsnummer when
// req.CorporateType is set.
func (g *Generator) SSN(req Request) (string, error) {
	n, err := g.Generate(req)
	if err != nil {
		return "", err
	}
	return n.Value, nil
}

// Generate dispatches req like SSN but returns the full Number.
func (g *Generator) Generate(req Request) (Number, error) {
	if req.CorporateType != "" {
		return g.Organisationsnummer(req.CorporateType)
	}
	return g.Personnummer(req.Personal())
}

// Personnummer generates a personal identity number for someone aged
// between req.MinAge and req.MaxAge years. An empty gender is chosen at
// random.
func (g *Generator) Personnummer(req PersonalRequest) (Number, error) {
	if err := g.validate.Struct(req); err != nil {
		return Number{}, invalid(err)
	}

	parts, gender, birth := personnummerParts(g.src, g.now(), req)
	return Number{
		Kind:      KindPersonnummer,
		Value:     withCheckDigit(parts),
		Gender:    gender,
		BirthDate: truncateDay(birth),
	}, nil
}

// Organisationsnummer generates a corporate registration number. An empty
// corporateType is chosen at random.
func (g *Generator) Organisationsnummer(corporateType string) (Number, error) {
	if err := g.validate.Var(corporateType, corporateTypeRule); err != nil {
		return Number{}, fmt.Errorf("%w: corporate type must be one digit between 1-3, 5-9", ErrInvalidArgument)
	}

	parts, ct := organisationsnummerParts(g.src, corporateType)
	return Number{
		Kind:          KindOrganisationsnummer,
		Value:         withCheckDigit(parts),
		CorporateType: ct,
	}, nil
}

// VATID returns a Swedish VAT id. It carries no checksum.
func (g *Generator) VATID() string {
	return Numerify(g.src, vatPattern)
}

// VAT wraps VATID in a Number.
func (g *Generator) VAT() Number {
	return Number{Kind: KindVAT, Value: g.VATID()}
}

func withCheckDigit(p Parts) string {
	check, err := Checksum(p.Prefix + p.Suffix)
	if err != nil {
		// parts are built from digits only
		panic("pnr: " + err.Error())
	}
	return p.Prefix + Separator + p.Suffix + strconv.Itoa(check)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// invalid maps a validation failure onto ErrInvalidArgument.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Gender":
		return fmt.Errorf("%w: gender must be one of F or M", ErrInvalidArgument)
	case "MinAge":
		return fmt.Errorf("%w: min age must not be negative", ErrInvalidArgument)
	case "MaxAge":
		return fmt.Errorf("%w: max age must not be less than min age", ErrInvalidArgument)
	}
	return fmt.Errorf("%w: %s failed %s", ErrInvalidArgument, fe.Field(), fe.Tag())
}
