package balances

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError describes a balance the compiler would silently ignore
// or that carries more precision than the books do.
type ValidationError struct {
	Code        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("balance [%s]: %s", e.Code, e.Description)
}

// AccountChecker tests whether an account code exists in the catalog.
type AccountChecker interface {
	Exists(code string) bool
}

// Validate checks every balance against the catalog, in code order.
func Validate(balances map[string]decimal.Decimal, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	hundred := decimal.NewFromInt(100)

	for _, code := range Codes(balances) {
		bal := balances[code]
		if !accounts.Exists(code) {
			errs = append(errs, ValidationError{
				Code:        code,
				Description: fmt.Sprintf("unknown account, balance %s is not reported", bal.StringFixed(2)),
			})
		}
		if scaled := bal.Mul(hundred); !scaled.Equal(scaled.Floor()) {
			errs = append(errs, ValidationError{
				Code:        code,
				Description: fmt.Sprintf("balance %s has more than 2 decimal places", bal),
			})
		}
	}
	return errs
}
