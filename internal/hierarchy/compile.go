// Package hierarchy compiles a flat chart of accounts and raw balances into
// a forest of aggregated balance nodes.
//
// Compilation never fails. Missing balances count as zero, unresolvable
// flip targets leave the balance where it is, and accounts whose parent
// code is absent become roots. What was tolerated is reported in
// Diagnostics.
package hierarchy

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/model"
)

// Diagnostics lists the silent fallbacks taken during one compilation.
type Diagnostics struct {
	Flips        []Flip
	SkippedFlips []SkippedFlip
	// Orphans are accounts below level 1 promoted to root because their
	// parent code does not resolve.
	Orphans []string
	// Duplicates are codes that occurred more than once; the first wins.
	Duplicates []string
	// UnknownRoots are roots that no statement section will pick up.
	UnknownRoots []string
}

// Empty reports whether nothing noteworthy happened besides applied flips.
func (d Diagnostics) Empty() bool {
	return len(d.SkippedFlips) == 0 && len(d.Orphans) == 0 && len(d.Duplicates) == 0 && len(d.UnknownRoots) == 0
}

// Result is the output of one compilation.
type Result struct {
	Forest *Forest
	// Raw is a copy of the input balances.
	Raw map[string]decimal.Decimal
	// Adjusted holds the balances after flip normalization.
	Adjusted    map[string]decimal.Decimal
	Diagnostics Diagnostics
}

// Compiler builds balance forests. It holds no per-call state.
type Compiler struct {
	widths     code.PrefixWidths
	classifier *classify.Classifier
}

// NewCompiler creates a Compiler using the given level prefix widths.
// classifier may be nil, in which case unknown roots are not reported.
func NewCompiler(widths code.PrefixWidths, classifier *classify.Classifier) *Compiler {
	w := make(code.PrefixWidths, len(widths))
	copy(w, widths)
	return &Compiler{widths: w, classifier: classifier}
}

// DefaultCompiler uses one digit per level and the default classifier.
func DefaultCompiler() *Compiler {
	return NewCompiler(code.DefaultPrefixWidths(), classify.Default())
}

// Compile runs the default compiler.
func Compile(accounts []model.Account, raw map[string]decimal.Decimal) *Result {
	return DefaultCompiler().Compile(accounts, raw)
}

// ParentCode returns the level-indexed parent code of an account.
func (c *Compiler) ParentCode(acct model.Account) (string, bool) {
	return code.Parent(acct.Code, acct.Level, c.widths)
}

// Classify returns the class of an account, or ClassUnknown when the
// compiler has no classifier.
func (c *Compiler) Classify(acct model.Account) model.AccountClass {
	if c.classifier == nil {
		return model.ClassUnknown
	}
	return c.classifier.Classify(acct)
}

// Compile normalizes flips and builds one node per account. It then links
// every node to its resolved parent, making unresolved ones roots, and
// aggregates each root's subtree depth-first in post-order, so a child is
// complete before its parent adds it. Declared levels only pick the parent
// prefix; they do not order the aggregation.
func (c *Compiler) Compile(accounts []model.Account, raw map[string]decimal.Decimal) *Result {
	var diag Diagnostics

	seen := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if seen[a.Code] {
			diag.Duplicates = append(diag.Duplicates, a.Code)
		}
		seen[a.Code] = true
	}
	accts := uniqueAccounts(accounts)
	sort.Slice(accts, func(i, j int) bool { return accts[i].Code < accts[j].Code })

	flips := ApplyFlips(accts, raw)
	diag.Flips = flips.Applied
	diag.SkippedFlips = flips.Skipped

	f := &Forest{
		nodes:  make([]BalanceNode, len(accts)),
		byCode: make(map[string]NodeID, len(accts)),
	}
	for i, a := range accts {
		bal := flips.Balances[a.Code]
		f.nodes[i] = BalanceNode{Account: a, Own: bal, Balance: bal, Parent: NoParent}
		f.byCode[a.Code] = NodeID(i)
	}

	for i := range f.nodes {
		n := &f.nodes[i]
		pcode, ok := c.ParentCode(n.Account)
		if ok {
			if pid, found := f.byCode[pcode]; found && pid != NodeID(i) {
				n.Parent = pid
				f.nodes[pid].Children = append(f.nodes[pid].Children, NodeID(i))
				continue
			}
		}
		f.roots = append(f.roots, NodeID(i))
		if n.Account.Level > 1 {
			diag.Orphans = append(diag.Orphans, n.Account.Code)
		}
	}

	// Parent chains are acyclic: each step zeroes at least one more trailing
	// digit, and a prefix that reproduces the code is rejected above.
	var aggregate func(id NodeID) decimal.Decimal
	aggregate = func(id NodeID) decimal.Decimal {
		n := &f.nodes[id]
		for _, k := range n.Children {
			n.Balance = n.Balance.Add(aggregate(k))
		}
		return n.Balance
	}
	for _, r := range f.roots {
		aggregate(r)
	}

	if c.classifier != nil {
		for _, r := range f.roots {
			if c.classifier.Classify(f.nodes[r].Account) == model.ClassUnknown {
				diag.UnknownRoots = append(diag.UnknownRoots, f.nodes[r].Account.Code)
			}
		}
	}

	rawCopy := make(map[string]decimal.Decimal, len(raw))
	for k, v := range raw {
		rawCopy[k] = v
	}

	return &Result{
		Forest:      f,
		Raw:         rawCopy,
		Adjusted:    flips.Balances,
		Diagnostics: diag,
	}
}
