// Package statements derives the income statement, balance sheet and
// cash-flow statement from a compiled balance forest.
//
// Only forest roots are partitioned, each classified once from its own
// account. Roots of class unknown appear in no statement.
package statements

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
)

// Statement and section labels.
const (
	LabelIncomeStatement = "Income Statement"
	LabelRevenue         = "Revenue"
	LabelExpenses        = "Expenses"
	LabelDividends       = "Dividends"
	LabelNetProfit       = "Net Profit"

	LabelBalanceSheet = "Balance Sheet"
	LabelAssets       = "Assets"
	LabelLiabilities  = "Liabilities"
	LabelEquity       = "Equity"
	LabelDiff         = "Diff (A - L - E)"

	LabelCashFlow  = "Cash Flow Statement"
	LabelOperating = "Operating Activities"
	LabelInvesting = "Investing Activities"
	LabelFinancing = "Financing Activities"
)

// Kind names one of the three statements.
type Kind string

const (
	KindIncome   Kind = "income"
	KindBalance  Kind = "balance"
	KindCashFlow Kind = "cashflow"
)

// Kinds lists the statements in presentation order.
var Kinds = []Kind{KindIncome, KindBalance, KindCashFlow}

// ParseKind accepts a statement kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindIncome, KindBalance, KindCashFlow:
		return k, nil
	default:
		return "", fmt.Errorf("unknown statement kind %q (want income, balance or cashflow)", s)
	}
}

// Band is a half-open numeric code range [Start, End).
type Band struct {
	Start int
	End   int
}

// Contains reports whether an all-digit code falls inside the band.
func (b Band) Contains(c string) bool {
	n, ok := code.Numeric(c)
	return ok && n >= b.Start && n < b.End
}

// DefaultInvestingBand selects long-term fixed-asset codes.
var DefaultInvestingBand = Band{Start: 2000, End: 8000}

// Generator derives statements. It holds no per-call state.
type Generator struct {
	classifier *classify.Classifier
	investing  Band
}

// New creates a Generator.
func New(classifier *classify.Classifier, investing Band) *Generator {
	return &Generator{classifier: classifier, investing: investing}
}

// Default uses the default classifier and investing band.
func Default() *Generator {
	return New(classify.Default(), DefaultInvestingBand)
}

// Set bundles the three statements derived from one forest.
type Set struct {
	Income       model.StatementNode `yaml:"income" json:"income"`
	BalanceSheet model.StatementNode `yaml:"balance_sheet" json:"balance_sheet"`
	CashFlow     model.StatementNode `yaml:"cash_flow" json:"cash_flow"`
}

// ByKind returns the statement of the given kind.
func (s Set) ByKind(k Kind) (model.StatementNode, bool) {
	switch k {
	case KindIncome:
		return s.Income, true
	case KindBalance:
		return s.BalanceSheet, true
	case KindCashFlow:
		return s.CashFlow, true
	default:
		return model.StatementNode{}, false
	}
}

// All derives every statement. The trees share no children.
func (g *Generator) All(f *hierarchy.Forest) Set {
	return Set{
		Income:       g.Income(f),
		BalanceSheet: g.BalanceSheet(f),
		CashFlow:     g.CashFlow(f),
	}
}

// Generate derives one statement.
func (g *Generator) Generate(f *hierarchy.Forest, k Kind) (model.StatementNode, error) {
	switch k {
	case KindIncome:
		return g.Income(f), nil
	case KindBalance:
		return g.BalanceSheet(f), nil
	case KindCashFlow:
		return g.CashFlow(f), nil
	default:
		return model.StatementNode{}, fmt.Errorf("unknown statement kind %q", k)
	}
}

// partition groups the forest roots by class.
func (g *Generator) partition(f *hierarchy.Forest) map[model.AccountClass][]hierarchy.NodeID {
	groups := make(map[model.AccountClass][]hierarchy.NodeID)
	for _, id := range f.Roots() {
		cls := g.classifier.Classify(f.Node(id).Account)
		groups[cls] = append(groups[cls], id)
	}
	return groups
}

func leaf(n *hierarchy.BalanceNode) model.StatementNode {
	return model.StatementNode{Code: n.Account.Code, Label: n.Account.Label, Balance: n.Balance}
}

// section sums the members' aggregated balances. With depth 1 each member
// also lists its direct children.
func section(f *hierarchy.Forest, label string, ids []hierarchy.NodeID, depth int) model.StatementNode {
	sec := model.StatementNode{Label: label, Balance: decimal.Zero}
	for _, id := range ids {
		n := f.Node(id)
		line := leaf(n)
		if depth > 0 {
			for _, k := range f.Children(id) {
				line.Children = append(line.Children, leaf(k))
			}
		}
		sec.Balance = sec.Balance.Add(n.Balance)
		sec.Children = append(sec.Children, line)
	}
	return sec
}

// Income computes revenue - expenses - dividends.
func (g *Generator) Income(f *hierarchy.Forest) model.StatementNode {
	groups := g.partition(f)
	rev := section(f, LabelRevenue, groups[model.ClassRevenue], 0)
	exp := section(f, LabelExpenses, groups[model.ClassExpense], 0)
	div := section(f, LabelDividends, groups[model.ClassDividend], 0)
	net := rev.Balance.Sub(exp.Balance).Sub(div.Balance)

	return model.StatementNode{
		Label:   LabelIncomeStatement,
		Balance: net,
		Children: []model.StatementNode{
			rev, exp, div,
			{Label: LabelNetProfit, Balance: net},
		},
	}
}

// BalanceSheet reports assets, liabilities and equity one level deeper
// than the income statement. The diff line is zero for a consistent
// ledger; it is reported, not enforced.
func (g *Generator) BalanceSheet(f *hierarchy.Forest) model.StatementNode {
	groups := g.partition(f)
	a := section(f, LabelAssets, groups[model.ClassAsset], 1)
	l := section(f, LabelLiabilities, groups[model.ClassLiability], 1)
	e := section(f, LabelEquity, groups[model.ClassEquity], 1)
	diff := a.Balance.Sub(l.Balance.Add(e.Balance))

	return model.StatementNode{
		Label:   LabelBalanceSheet,
		Balance: a.Balance,
		Children: []model.StatementNode{
			a, l, e,
			{Label: LabelDiff, Balance: diff},
		},
	}
}

// CashFlow recombines the other two statements. Its root balance is
// always zero; only the three activity sections carry amounts.
func (g *Generator) CashFlow(f *hierarchy.Forest) model.StatementNode {
	inc := g.Income(f)
	bs := g.BalanceSheet(f)

	op := model.StatementNode{Label: LabelOperating, Balance: inc.Balance, Children: inc.Children}

	inv := model.StatementNode{Label: LabelInvesting, Balance: decimal.Zero}
	if assets, ok := bs.Child(LabelAssets); ok {
		for _, n := range assets.Children {
			if g.investing.Contains(n.Code) {
				inv.Balance = inv.Balance.Add(n.Balance)
				inv.Children = append(inv.Children, n)
			}
		}
	}

	fin := model.StatementNode{Label: LabelFinancing, Balance: decimal.Zero}
	if eq, ok := bs.Child(LabelEquity); ok {
		fin.Balance = eq.Balance
		fin.Children = eq.Children
	}

	return model.StatementNode{
		Label:    LabelCashFlow,
		Balance:  decimal.Zero,
		Children: []model.StatementNode{op, inv, fin},
	}
}
