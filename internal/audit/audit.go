// Package audit checks a compiled forest and its statements against the
// invariants the compiler and generator promise, and reports the silent
// fallbacks they took.
package audit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/statements"
)

// Check names one audit rule.
type Check string

const (
	CheckNodeConsistency  Check = "node-consistency"
	CheckForestTotal      Check = "forest-total"
	CheckIncomeNet        Check = "income-net"
	CheckBalanceSheetDiff Check = "balance-sheet-diff"
	CheckFlipConservation Check = "flip-conservation"
	CheckSkippedFlip      Check = "skipped-flip"
	CheckOrphan           Check = "orphan"
	CheckDuplicate        Check = "duplicate-code"
	CheckUnknownRoot      Check = "unknown-root"
	CheckParentFormula    Check = "parent-formula"
)

// Severity separates broken invariants from tolerated input defects.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding describes a single audit result.
type Finding struct {
	Check       Check    `json:"check" yaml:"check"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Code        string   `json:"code,omitempty" yaml:"code,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

func (f Finding) Error() string {
	if f.Code == "" {
		return fmt.Sprintf("%s %s: %s", f.Severity, f.Check, f.Description)
	}
	return fmt.Sprintf("%s %s [%s]: %s", f.Severity, f.Check, f.Code, f.Description)
}

// Rules yields the canonical parent code and the class of an account,
// independently of the statements under audit.
type Rules interface {
	ParentCode(acct model.Account) (string, bool)
	Classify(acct model.Account) model.AccountClass
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Verify runs every check. With nil rules the income and parent-formula
// checks are skipped.
func Verify(res *hierarchy.Result, set statements.Set, rules Rules) []Finding {
	var out []Finding
	out = append(out, verifyForest(res)...)
	out = append(out, verifyBalanceSheet(set)...)
	out = append(out, verifyFlips(res)...)
	out = append(out, verifyDiagnostics(res.Diagnostics)...)
	if rules != nil {
		out = append(out, verifyIncome(res.Forest, set, rules)...)
		out = append(out, verifyParentFormula(res.Forest, rules)...)
	}
	return out
}

func verifyForest(res *hierarchy.Result) []Finding {
	var errs []Finding
	f := res.Forest

	f.Walk(func(id hierarchy.NodeID, _ int) bool {
		n := f.Node(id)
		sum := n.Own
		for _, k := range f.Children(id) {
			sum = sum.Add(k.Balance)
		}
		if !sum.Equal(n.Balance) {
			errs = append(errs, Finding{
				Check:       CheckNodeConsistency,
				Severity:    SeverityError,
				Code:        n.Account.Code,
				Description: fmt.Sprintf("balance %s != own %s + children", n.Balance, n.Own),
			})
		}
		return true
	})

	adjusted := decimal.Zero
	for i := 0; i < f.Len(); i++ {
		adjusted = adjusted.Add(res.Adjusted[f.Node(hierarchy.NodeID(i)).Account.Code])
	}
	if total := f.Total(); !total.Equal(adjusted) {
		errs = append(errs, Finding{
			Check:       CheckForestTotal,
			Severity:    SeverityError,
			Description: fmt.Sprintf("root balances sum to %s, adjusted balances to %s", total, adjusted),
		})
	}
	return errs
}

// verifyIncome recomputes the net result from the forest roots and
// compares it with the income statement.
func verifyIncome(f *hierarchy.Forest, set statements.Set, rules Rules) []Finding {
	sums := make(map[model.AccountClass]decimal.Decimal)
	for _, n := range f.RootNodes() {
		cls := rules.Classify(n.Account)
		sums[cls] = sums[cls].Add(n.Balance)
	}
	want := sums[model.ClassRevenue].Sub(sums[model.ClassExpense]).Sub(sums[model.ClassDividend])

	net, _ := set.Income.Child(statements.LabelNetProfit)
	if net.Balance.Equal(want) && set.Income.Balance.Equal(want) {
		return nil
	}
	return []Finding{{
		Check:    CheckIncomeNet,
		Severity: SeverityError,
		Description: fmt.Sprintf("net profit %s (statement total %s) != revenue - expenses - dividends over the forest roots (%s)",
			net.Balance, set.Income.Balance, want),
	}}
}

func verifyBalanceSheet(set statements.Set) []Finding {
	diff, _ := set.BalanceSheet.Child(statements.LabelDiff)
	if diff.Balance.IsZero() {
		return nil
	}
	return []Finding{{
		Check:       CheckBalanceSheetDiff,
		Severity:    SeverityError,
		Description: fmt.Sprintf("assets - (liabilities + equity) = %s", diff.Balance.StringFixed(2)),
	}}
}

// verifyFlips compares signed totals before and after flips. A flip between
// two accounts with the same normal direction shifts the signed total.
func verifyFlips(res *hierarchy.Result) []Finding {
	f := res.Forest
	before, after := decimal.Zero, decimal.Zero
	for i := 0; i < f.Len(); i++ {
		a := f.Node(hierarchy.NodeID(i)).Account
		sign := decimal.NewFromInt(a.Direction.Sign())
		before = before.Add(res.Raw[a.Code].Mul(sign))
		after = after.Add(res.Adjusted[a.Code].Mul(sign))
	}
	if before.Equal(after) {
		return nil
	}

	var errs []Finding
	for _, fl := range res.Diagnostics.Flips {
		from, okFrom := f.Lookup(fl.From)
		to, okTo := f.Lookup(fl.To)
		if !okFrom || !okTo {
			continue
		}
		if f.Node(from).Account.Direction.Sign() == f.Node(to).Account.Direction.Sign() {
			errs = append(errs, Finding{
				Check:       CheckFlipConservation,
				Severity:    SeverityWarning,
				Code:        fl.From,
				Description: fmt.Sprintf("flip of %s into %s joins accounts with the same normal direction", fl.Amount, fl.To),
			})
		}
	}
	if len(errs) == 0 {
		errs = append(errs, Finding{
			Check:       CheckFlipConservation,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("signed total changed from %s to %s", before, after),
		})
	}
	return errs
}

func verifyDiagnostics(d hierarchy.Diagnostics) []Finding {
	var out []Finding
	for _, s := range d.SkippedFlips {
		out = append(out, Finding{
			Check:       CheckSkippedFlip,
			Severity:    SeverityWarning,
			Code:        s.Code,
			Description: fmt.Sprintf("balance %s kept: %s (%s)", s.Balance, s.Reason, s.Target),
		})
	}
	for _, c := range d.Orphans {
		out = append(out, Finding{Check: CheckOrphan, Severity: SeverityWarning, Code: c, Description: "parent code not in catalog, promoted to root"})
	}
	for _, c := range d.Duplicates {
		out = append(out, Finding{Check: CheckDuplicate, Severity: SeverityWarning, Code: c, Description: "code occurs more than once, first kept"})
	}
	for _, c := range d.UnknownRoots {
		out = append(out, Finding{Check: CheckUnknownRoot, Severity: SeverityWarning, Code: c, Description: "root matches no class, excluded from statements"})
	}
	return out
}

// verifyParentFormula flags accounts whose structural parent differs from
// the level-indexed one.
func verifyParentFormula(f *hierarchy.Forest, rules Rules) []Finding {
	var out []Finding
	for i := 0; i < f.Len(); i++ {
		a := f.Node(hierarchy.NodeID(i)).Account
		canonical, okC := rules.ParentCode(a)
		structural, okS := code.StructuralParent(a.Code) //nolint:staticcheck // compared on purpose
		if okC == okS && canonical == structural {
			continue
		}
		out = append(out, Finding{
			Check:       CheckParentFormula,
			Severity:    SeverityWarning,
			Code:        a.Code,
			Description: fmt.Sprintf("level %d parent %s, structural parent %s", a.Level, orNone(canonical, okC), orNone(structural, okS)),
		})
	}
	return out
}

func orNone(c string, ok bool) string {
	if !ok {
		return "none"
	}
	return c
}
