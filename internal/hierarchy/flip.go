package hierarchy

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/model"
)

// Flip is one applied omslag adjustment: Amount moved from the account
// with code From to the account with code To.
type Flip struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// SkippedFlip is a negative balance whose flip target could not be used.
type SkippedFlip struct {
	Code    string
	Target  string
	Balance decimal.Decimal
	Reason  string
}

// FlipResult holds balances after flip normalization.
type FlipResult struct {
	// Balances contains every raw entry plus a zero for each account
	// without one.
	Balances map[string]decimal.Decimal
	Applied  []Flip
	Skipped  []SkippedFlip
}

// ApplyFlips moves the absolute value of every strictly negative balance on
// an account with a flip target to the account whose secondary identifier
// equals that target, zeroing the source. Eligibility is decided on the raw
// balances, so the outcome does not depend on account order. When several
// accounts share the identifier the lowest code receives the flip. The raw
// map is not modified.
func ApplyFlips(accounts []model.Account, raw map[string]decimal.Decimal) FlipResult {
	accts := uniqueAccounts(accounts)

	adjusted := make(map[string]decimal.Decimal, len(raw)+len(accts))
	for k, v := range raw {
		adjusted[k] = v
	}

	byIdentifier := make(map[string]string, len(accts))
	for _, a := range accts {
		if a.Identifiers.RGS == "" {
			continue
		}
		if cur, ok := byIdentifier[a.Identifiers.RGS]; !ok || a.Code < cur {
			byIdentifier[a.Identifiers.RGS] = a.Code
		}
	}

	sorted := make([]model.Account, len(accts))
	copy(sorted, accts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	var res FlipResult
	for _, a := range sorted {
		if _, ok := adjusted[a.Code]; !ok {
			adjusted[a.Code] = decimal.Zero
		}

		bal := raw[a.Code]
		if !a.Identifiers.HasFlip() || !bal.IsNegative() {
			continue
		}
		target, ok := byIdentifier[a.Identifiers.Flip]
		switch {
		case !ok:
			res.Skipped = append(res.Skipped, SkippedFlip{Code: a.Code, Target: a.Identifiers.Flip, Balance: bal, Reason: "no account carries the target identifier"})
			continue
		case target == a.Code:
			res.Skipped = append(res.Skipped, SkippedFlip{Code: a.Code, Target: a.Identifiers.Flip, Balance: bal, Reason: "flip target is the account itself"})
			continue
		}
		res.Applied = append(res.Applied, Flip{From: a.Code, To: target, Amount: bal.Abs()})
	}

	for _, f := range res.Applied {
		// Subtract the raw value rather than assigning zero so that flips
		// received by a flipped source survive.
		adjusted[f.From] = adjusted[f.From].Sub(raw[f.From])
		adjusted[f.To] = adjusted[f.To].Add(f.Amount)
	}

	res.Balances = adjusted
	return res
}

// uniqueAccounts keeps the first account for each code.
func uniqueAccounts(accounts []model.Account) []model.Account {
	seen := make(map[string]bool, len(accounts))
	out := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if seen[a.Code] {
			continue
		}
		seen[a.Code] = true
		out = append(out, a)
	}
	return out
}
