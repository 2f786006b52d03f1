package model

import (
	"errors"
	"fmt"
	"strings"
)

// AccountClass is the semantic class of an account in the financial statements.
type AccountClass string

const (
	ClassAsset     AccountClass = "asset"
	ClassLiability AccountClass = "liability"
	ClassEquity    AccountClass = "equity"
	ClassRevenue   AccountClass = "revenue"
	ClassExpense   AccountClass = "expense"
	ClassDividend  AccountClass = "dividend"
	ClassUnknown   AccountClass = "unknown"
)

// AllClasses lists every class, unknown last.
var AllClasses = []AccountClass{
	ClassAsset,
	ClassLiability,
	ClassEquity,
	ClassRevenue,
	ClassExpense,
	ClassDividend,
	ClassUnknown,
}

// Valid reports whether c is one of the known class values.
func (c AccountClass) Valid() bool {
	for _, k := range AllClasses {
		if c == k {
			return true
		}
	}
	return false
}

// ErrInvalidDirection is returned for a direction marker that is neither debit nor credit.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is the normal balance side of an account. The zero value means
// the catalog did not declare one.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// ParseDirection accepts D, DR, debit, C, CR and credit in any case.
// An empty string yields DirectionNone.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return DirectionNone, nil
	case "D", "DR", "DEBIT":
		return DirectionDebit, nil
	case "C", "CR", "CREDIT":
		return DirectionCredit, nil
	default:
		return DirectionNone, fmt.Errorf("%w: %q", ErrInvalidDirection, raw)
	}
}

// Sign converts a balance in the account's natural direction to the
// debit-positive convention.
func (d Direction) Sign() int64 {
	if d == DirectionCredit {
		return -1
	}
	return 1
}

// Identifiers holds the cross-reference codes of an account.
type Identifiers struct {
	RGS  string `yaml:"rgs" json:"rgs"`                       // secondary code used by external catalogs
	Flip string `yaml:"flip,omitempty" json:"flip,omitempty"` // omslag target identifier, empty when absent
}

// HasFlip reports whether the account declares a flip target.
func (i Identifiers) HasFlip() bool {
	return i.Flip != ""
}

// EntityType is a legal-entity form an account can apply to.
type EntityType string

const (
	EntitySoleTrader  EntityType = "zzp"
	EntityProprietor  EntityType = "ez"
	EntityCorporation EntityType = "bv"
	EntityFoundation  EntityType = "svc"
)

// Applicability flags which entity types an account applies to. The
// compiler ignores it.
type Applicability struct {
	ZZP     bool `yaml:"zzp" json:"zzp"`
	EZ      bool `yaml:"ez" json:"ez"`
	BV      bool `yaml:"bv" json:"bv"`
	SVC     bool `yaml:"svc" json:"svc"`
	Branche bool `yaml:"branche" json:"branche"`
}

// AppliesTo reports whether the account is used by the given entity type.
// Unrecognized entity types match every account.
func (a Applicability) AppliesTo(entity EntityType) bool {
	switch entity {
	case EntitySoleTrader:
		return a.ZZP
	case EntityProprietor:
		return a.EZ
	case EntityCorporation:
		return a.BV
	case EntityFoundation:
		return a.SVC
	default:
		return true
	}
}

// Account is one entry of the standardized chart of accounts. Values are
// shared read-only between the catalog, the compiled tree and the statements.
type Account struct {
	Code          string        `yaml:"code" json:"code"`
	Label         string        `yaml:"label" json:"label"`
	Level         int           `yaml:"level" json:"level"`
	Direction     Direction     `yaml:"direction,omitempty" json:"direction,omitempty"`
	Identifiers   Identifiers   `yaml:"identifiers" json:"identifiers"`
	Applicability Applicability `yaml:"applicability" json:"applicability"`
}
