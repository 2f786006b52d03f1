// Package classify maps accounts to their semantic class using a label
// marker and an ordered table of half-open code ranges.
package classify

import (
	"strings"

	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/model"
)

// DefaultDividendMarker is matched case-insensitively against account labels.
const DefaultDividendMarker = "dividend"

// Range assigns a class to the codes in [Start, End).
type Range struct {
	Start int                `yaml:"start"`
	End   int                `yaml:"end"`
	Class model.AccountClass `yaml:"class"`
}

// Contains reports whether n falls inside the range.
func (r Range) Contains(n int) bool {
	return n >= r.Start && n < r.End
}

// DefaultRanges covers the five-digit code space from fixed assets (0xxxx)
// through revenue (8xxxx). Codes from 90000 up are left unclassified.
func DefaultRanges() []Range {
	return []Range{
		{Start: 0, End: 10000, Class: model.ClassAsset},
		{Start: 10000, End: 20000, Class: model.ClassAsset},
		{Start: 20000, End: 30000, Class: model.ClassLiability},
		{Start: 30000, End: 40000, Class: model.ClassEquity},
		{Start: 40000, End: 80000, Class: model.ClassExpense},
		{Start: 80000, End: 90000, Class: model.ClassRevenue},
	}
}

// Classifier is stateless after construction and safe for concurrent use.
type Classifier struct {
	marker string
	ranges []Range
}

// New creates a Classifier. An empty marker disables label matching; the
// ranges are copied and evaluated in order, first match wins.
func New(dividendMarker string, ranges []Range) *Classifier {
	rs := make([]Range, len(ranges))
	copy(rs, ranges)
	return &Classifier{marker: strings.ToLower(dividendMarker), ranges: rs}
}

// Default returns a Classifier with the default marker and ranges.
func Default() *Classifier {
	return New(DefaultDividendMarker, DefaultRanges())
}

// Classify returns the class of an account. Accounts that match no range,
// or whose code is not numeric, are ClassUnknown.
func (c *Classifier) Classify(acct model.Account) model.AccountClass {
	if c.marker != "" && strings.Contains(strings.ToLower(acct.Label), c.marker) {
		return model.ClassDividend
	}
	return c.ClassifyCode(acct.Code)
}

// ClassifyCode applies the range table only.
func (c *Classifier) ClassifyCode(s string) model.AccountClass {
	n, ok := code.Numeric(s)
	if !ok {
		return model.ClassUnknown
	}
	for _, r := range c.ranges {
		if r.Contains(n) {
			return r.Class
		}
	}
	return model.ClassUnknown
}

// Ranges returns a copy of the range table.
func (c *Classifier) Ranges() []Range {
	rs := make([]Range, len(c.ranges))
	copy(rs, c.ranges)
	return rs
}
